package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chart-signal/internal/cache"
	"chart-signal/internal/classifier"
	"chart-signal/internal/config"
	"chart-signal/internal/metrics"
	"chart-signal/internal/orchestrator"
	"chart-signal/internal/service"
	"chart-signal/pkg/logging"
	"chart-signal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const serverVersion = "v1.0.0"

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	newBackendFunc = func(tracer trace.Tracer, baseURL, modelID string, timeout time.Duration, limiter *classifier.RateLimiter) classifier.Backend {
		return classifier.NewHTTPInferer(tracer, baseURL, modelID, timeout, limiter)
	}
	runServerFunc = func(ctx context.Context, s *mcp.Server) error { return s.Run(ctx, &mcp.StdioTransport{}) }
)

// Stdout carries the MCP protocol, so all logging goes to stderr.
func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()
	if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Warn().Err(err).Msg("invalid logging config, keeping defaults")
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer tp.Shutdown(context.Background())

	if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
		log.Warn().Err(err).Msg("redis disabled")
	}

	limiter := classifier.NewRateLimiter(cfg.InferenceRatePerSec)
	timeout := time.Duration(cfg.InferenceTimeoutSecs) * time.Second
	loaded, err := classifier.LoadModels(ctx, tracer, cfg.ModelIDs, func(id string) classifier.Backend {
		return newBackendFunc(tracer, cfg.InferenceURL, id, timeout, limiter)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load models")
	}
	models := make([]orchestrator.Classifier, len(loaded))
	for i, m := range loaded {
		models[i] = m
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	svc := service.NewClassificationService(tracer, orchestrator.New(tracer, models), nil, redisClient,
		time.Duration(cfg.ReportCacheTTLSecs)*time.Second)

	server := newServer(&tools{analyzer: svc, readFile: os.ReadFile})
	log.Info().Int("models", len(models)).Msg("mcp server starting on stdio")
	if err := runServerFunc(ctx, server); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("mcp server stopped")
	}
}

func newServer(t *tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: tracing.ServiceName, Version: serverVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_chart",
		Description: "Classify a chart image file with the four chart models and return a Buy, Sell or Neutral recommendation.",
	}, t.classifyChart)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "aggregate_labels",
		Description: "Score four model labels, in slot order, against the direction tables without running any model.",
	}, t.aggregateLabels)
	return server
}
