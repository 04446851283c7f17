package handler

import (
	"context"

	"chart-signal/internal/chart"
	"chart-signal/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxUploadBytes = 10 << 20

type ChartAnalyzer interface {
	Analyze(ctx context.Context, upload *chart.Upload) (*domain.Report, error)
	GetReport(ctx context.Context, digest string) (*domain.Report, error)
	ListReports(ctx context.Context, limit int) ([]domain.Report, error)
	Models() []domain.ModelSlot
}

type Handler struct {
	tracer         trace.Tracer
	analyzer       ChartAnalyzer
	apiKey         string
	maxUploadBytes int64
}

func New(tracer trace.Tracer, analyzer ChartAnalyzer, apiKey string, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		tracer:         tracer,
		analyzer:       analyzer,
		apiKey:         apiKey,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/models", h.ListModels)
	api.POST("/aggregate", h.Aggregate)
	api.GET("/reports", h.ListReports)
	api.GET("/reports/:digest", h.GetReport)

	protected := api.Group("", APIKeyAuth(h.apiKey))
	protected.POST("/classify", h.Classify)
}
