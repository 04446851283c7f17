package docs

import (
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "Chart Signal API" {
		t.Fatalf("unexpected title %q", SwaggerInfo.Title)
	}
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	if !strings.Contains(doc, "/api/classify") {
		t.Fatal("expected classify route in swagger doc")
	}
}
