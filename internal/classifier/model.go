package classifier

import (
	"context"
	"image"
	"time"

	"chart-signal/internal/domain"
	"chart-signal/internal/metrics"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Inferer is one trained image classifier. Observations may arrive in any
// order; an empty slice means the model recognised nothing.
type Inferer interface {
	Infer(ctx context.Context, img image.Image) ([]domain.Observation, error)
}

// Model adapts an Inferer to the ClassificationResult shape. It holds no
// mutable state and is safe for concurrent use.
type Model struct {
	id      string
	tracer  trace.Tracer
	inferer Inferer
}

func NewModel(tracer trace.Tracer, id string, inferer Inferer) *Model {
	return &Model{id: id, tracer: tracer, inferer: inferer}
}

func (m *Model) ID() string { return m.id }

// Classify never fails: inference errors and empty outputs both come back as
// an empty result.
func (m *Model) Classify(ctx context.Context, img image.Image) domain.ClassificationResult {
	ctx, span := m.tracer.Start(ctx, "model.classify")
	defer span.End()
	span.SetAttributes(attribute.String("model.id", m.id))

	start := time.Now()
	observations, err := m.inferer.Infer(ctx, img)
	metrics.InferenceLatency.WithLabelValues(m.id).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceFailures.WithLabelValues(m.id).Inc()
		log.Warn().Err(err).Str("model", m.id).Msg("inference failed")
		return domain.EmptyResult()
	}
	if len(observations) == 0 {
		return domain.EmptyResult()
	}

	result := ToResult(observations)
	span.SetAttributes(attribute.String("model.label", result.Label))
	return result
}

// ToResult picks the highest-confidence observation as the label and keeps
// every reported class in the probability map. Ties keep the first reported.
func ToResult(observations []domain.Observation) domain.ClassificationResult {
	if len(observations) == 0 {
		return domain.EmptyResult()
	}
	top := 0
	probabilities := make(map[string]float64, len(observations))
	for i, obs := range observations {
		probabilities[obs.Label] = obs.Confidence
		if obs.Confidence > observations[top].Confidence {
			top = i
		}
	}
	return domain.ClassificationResult{
		Label:         observations[top].Label,
		Probabilities: probabilities,
	}
}
