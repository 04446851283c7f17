package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(ClassificationsDropped)
	ClassificationsDropped.Inc()
	if got := testutil.ToFloat64(ClassificationsDropped); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	InferenceFailures.WithLabelValues("m1").Inc()
	if got := testutil.ToFloat64(InferenceFailures.WithLabelValues("m1")); got < 1 {
		t.Fatalf("expected failure counter >= 1, got %v", got)
	}
}
