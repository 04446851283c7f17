package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"chart-signal/internal/chart"
	"chart-signal/internal/domain"
	"chart-signal/internal/metrics"
	"chart-signal/internal/orchestrator"
	"chart-signal/internal/recommend"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultReportCacheTTL = time.Hour

var ErrReportNotFound = errors.New("report not found")

type Orchestrator interface {
	ClassifyAll(ctx context.Context, img image.Image) (orchestrator.Batch, error)
	Slots() []domain.ModelSlot
}

type ReportStore interface {
	Insert(ctx context.Context, report domain.Report) error
	GetByDigest(ctx context.Context, digest string) (*domain.Report, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Report, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// ClassificationService runs a chart through the models, scores the labels and
// keeps the resulting report in the cache and, when configured, in history.
type ClassificationService struct {
	tracer   trace.Tracer
	orch     Orchestrator
	store    ReportStore
	redis    RedisClient
	cacheTTL time.Duration
	now      func() time.Time
	newID    func() string
}

func NewClassificationService(
	tracer trace.Tracer,
	orch Orchestrator,
	store ReportStore,
	redisClient RedisClient,
	cacheTTL time.Duration,
) *ClassificationService {
	if cacheTTL <= 0 {
		cacheTTL = defaultReportCacheTTL
	}
	return &ClassificationService{
		tracer:   tracer,
		orch:     orch,
		store:    store,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *ClassificationService) Models() []domain.ModelSlot {
	return s.orch.Slots()
}

// AnalyzeBytes decodes an uploaded chart and analyzes it.
func (s *ClassificationService) AnalyzeBytes(ctx context.Context, raw []byte) (*domain.Report, error) {
	upload, err := chart.Decode(raw)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, upload)
}

func (s *ClassificationService) Analyze(ctx context.Context, upload *chart.Upload) (*domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "classification-service.analyze")
	defer span.End()

	var img image.Image
	digest := ""
	if upload != nil {
		img = upload.Image
		digest = upload.Digest
	}

	batch, err := s.orch.ClassifyAll(ctx, img)
	if err != nil {
		return nil, err
	}
	// Models degrade to empty on a dead context; that batch is not a result.
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Str("digest", digest).Msg("classification abandoned")
		return nil, fmt.Errorf("classification abandoned: %w", err)
	}

	eval := recommend.Evaluate(batch.Labels())
	report := domain.Report{
		ID:             s.newID(),
		Digest:         digest,
		Results:        make([]domain.ModelResult, len(batch.Results)),
		Score:          eval.Score,
		Recommendation: eval.Recommendation,
		CreatedAt:      s.now().UTC(),
	}
	for i, res := range batch.Results {
		slot := domain.ModelSlot{Slot: i + 1}
		if i < len(batch.Slots) {
			slot = batch.Slots[i]
		}
		report.Results[i] = domain.ModelResult{
			Slot:          slot.Slot,
			ModelID:       slot.ModelID,
			Label:         res.Label,
			Probabilities: res.Probabilities,
		}
	}
	span.SetAttributes(
		attribute.String("report.digest", digest),
		attribute.String("report.recommendation", string(report.Recommendation)),
		attribute.Int("report.score", report.Score),
	)
	metrics.Recommendations.WithLabelValues(string(report.Recommendation)).Inc()

	if s.redis != nil && digest != "" {
		if err := s.setReportCache(ctx, report); err != nil {
			log.Warn().Err(err).Str("digest", digest).Msg("redis cache write error")
		}
	}
	if s.store != nil {
		if err := s.store.Insert(ctx, report); err != nil {
			log.Error().Err(err).Str("digest", digest).Msg("failed to persist report")
		}
	}

	log.Info().
		Str("digest", digest).
		Strs("labels", batch.Labels()).
		Int("score", report.Score).
		Str("recommendation", string(report.Recommendation)).
		Msg("chart classified")
	return &report, nil
}

// GetReport looks in the cache first and falls back to history.
func (s *ClassificationService) GetReport(ctx context.Context, digest string) (*domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "classification-service.get-report")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getReportCache(ctx, digest)
		if err != nil {
			log.Warn().Err(err).Str("digest", digest).Msg("redis cache read error")
		}
		if cached != nil {
			return cached, nil
		}
	}

	if s.store != nil {
		report, err := s.store.GetByDigest(ctx, digest)
		if err != nil {
			return nil, fmt.Errorf("load report %s: %w", digest, err)
		}
		if report != nil {
			return report, nil
		}
	}
	return nil, ErrReportNotFound
}

func (s *ClassificationService) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "classification-service.list-reports")
	defer span.End()

	if s.store == nil {
		return []domain.Report{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	reports, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	return reports, nil
}

func reportCacheKey(digest string) string {
	return "report:" + digest
}

func (s *ClassificationService) setReportCache(ctx context.Context, report domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, reportCacheKey(report.Digest), data, s.cacheTTL).Err()
}

func (s *ClassificationService) getReportCache(ctx context.Context, digest string) (*domain.Report, error) {
	data, err := s.redis.Get(ctx, reportCacheKey(digest)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
