package job

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

type ReportPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionSweeper periodically deletes report history older than the
// retention window.
type RetentionSweeper struct {
	tracer    trace.Tracer
	pruner    ReportPruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewRetentionSweeper(tracer trace.Tracer, pruner ReportPruner, retentionDays, intervalSecs int) *RetentionSweeper {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	if intervalSecs <= 0 {
		intervalSecs = 3600
	}
	return &RetentionSweeper{
		tracer:    tracer,
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  time.Duration(intervalSecs) * time.Second,
		now:       time.Now,
	}
}

// Start runs a sweep immediately and then on every tick. Blocks until ctx is
// cancelled.
func (s *RetentionSweeper) Start(ctx context.Context) {
	log.Info().Dur("retention", s.retention).Dur("interval", s.interval).Msg("retention sweeper starting")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("retention sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RetentionSweeper) sweep(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "retention-sweeper.sweep")
	defer span.End()

	cutoff := s.now().UTC().Add(-s.retention)
	deleted, err := s.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("retention sweep failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("pruned report history")
	}
}
