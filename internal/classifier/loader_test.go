package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubBackend struct {
	stubInferer
	loadErr error
	loaded  bool
}

func (s *stubBackend) Load(ctx context.Context) error {
	s.loaded = true
	return s.loadErr
}

func TestLoadModelsKeepsOrder(t *testing.T) {
	backends := map[string]*stubBackend{}
	ids := []string{"a", "b", "c", "d"}

	models, err := LoadModels(context.Background(), testTracer, ids, func(id string) Backend {
		b := &stubBackend{}
		backends[id] = b
		return b
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, m := range models {
		if m.ID() != ids[i] {
			t.Errorf("slot %d: expected %s, got %s", i+1, ids[i], m.ID())
		}
		if !backends[ids[i]].loaded {
			t.Errorf("backend %s was not loaded", ids[i])
		}
	}
}

func TestLoadModelsStopsAtFirstFailure(t *testing.T) {
	var seen []string
	_, err := LoadModels(context.Background(), testTracer, []string{"a", "b", "c"}, func(id string) Backend {
		seen = append(seen, id)
		if id == "b" {
			return &stubBackend{loadErr: ErrModelNotReady}
		}
		return &stubBackend{}
	})
	if !errors.Is(err, ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady, got %v", err)
	}
	if !strings.Contains(err.Error(), "model 2 (b)") {
		t.Fatalf("expected error to name the model, got %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected loading to stop after b, saw %v", seen)
	}
}
