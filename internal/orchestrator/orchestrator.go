package orchestrator

import (
	"context"
	"errors"
	"image"
	"sync/atomic"

	"chart-signal/internal/domain"
	"chart-signal/internal/metrics"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	ErrBusy    = errors.New("classification already in flight")
	ErrNoImage = errors.New("no image to classify")
)

// Classifier is the model wrapper contract: it always returns a result.
type Classifier interface {
	ID() string
	Classify(ctx context.Context, img image.Image) domain.ClassificationResult
}

// Batch holds one result per model slot, in slot order.
type Batch struct {
	Slots   []domain.ModelSlot
	Results []domain.ClassificationResult
}

func (b Batch) Labels() []string {
	labels := make([]string, len(b.Results))
	for i, r := range b.Results {
		labels[i] = r.Label
	}
	return labels
}

// Orchestrator runs the same image through every model at once and waits for
// all of them. Only one classification may be in flight at a time; extra
// requests are refused rather than queued.
//
// There is no per-model deadline here. A model that never answers holds the
// batch, and the gate, until ctx or the model's own transport gives up.
type Orchestrator struct {
	tracer   trace.Tracer
	models   []Classifier
	inFlight atomic.Bool
}

func New(tracer trace.Tracer, models []Classifier) *Orchestrator {
	return &Orchestrator{tracer: tracer, models: models}
}

func (o *Orchestrator) Slots() []domain.ModelSlot {
	slots := make([]domain.ModelSlot, len(o.models))
	for i, m := range o.models {
		slots[i] = domain.ModelSlot{Slot: i + 1, ModelID: m.ID()}
	}
	return slots
}

// Busy reports whether a classification is currently running.
func (o *Orchestrator) Busy() bool {
	return o.inFlight.Load()
}

func (o *Orchestrator) ClassifyAll(ctx context.Context, img image.Image) (Batch, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		metrics.ClassificationsDropped.Inc()
		log.Debug().Msg("classification dropped: another one is in flight")
		return Batch{}, ErrBusy
	}
	defer o.inFlight.Store(false)

	if img == nil {
		log.Info().Msg("no image selected, skipping classification")
		return Batch{}, ErrNoImage
	}

	ctx, span := o.tracer.Start(ctx, "orchestrator.classify-all")
	defer span.End()
	span.SetAttributes(attribute.Int("models", len(o.models)))

	results := make([]domain.ClassificationResult, len(o.models))
	var g errgroup.Group
	for i, m := range o.models {
		g.Go(func() error {
			results[i] = m.Classify(ctx, img)
			return nil
		})
	}
	_ = g.Wait()

	return Batch{Slots: o.Slots(), Results: results}, nil
}
