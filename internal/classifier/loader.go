package classifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Backend is an Inferer that must be confirmed ready before it serves.
type Backend interface {
	Inferer
	Load(ctx context.Context) error
}

// LoadModels builds one Model per ID, in the order given, and loads each
// backend. The first backend that fails to load aborts with an error naming
// its slot and model ID.
func LoadModels(ctx context.Context, tracer trace.Tracer, ids []string, newBackend func(id string) Backend) ([]*Model, error) {
	models := make([]*Model, 0, len(ids))
	for i, id := range ids {
		backend := newBackend(id)
		if err := backend.Load(ctx); err != nil {
			return nil, fmt.Errorf("model %d (%s): %w", i+1, id, err)
		}
		log.Info().Int("slot", i+1).Str("model", id).Msg("model ready")
		models = append(models, NewModel(tracer, id, backend))
	}
	return models, nil
}
