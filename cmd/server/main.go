package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chart-signal/internal/bot"
	"chart-signal/internal/cache"
	"chart-signal/internal/classifier"
	"chart-signal/internal/config"
	"chart-signal/internal/db"
	"chart-signal/internal/handler"
	"chart-signal/internal/job"
	"chart-signal/internal/metrics"
	"chart-signal/internal/orchestrator"
	"chart-signal/internal/repository"
	"chart-signal/internal/service"
	"chart-signal/pkg/logging"
	"chart-signal/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "chart-signal/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initLoggingFunc  = logging.Init
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newBackendFunc   = func(tracer trace.Tracer, baseURL, modelID string, timeout time.Duration, limiter *classifier.RateLimiter) classifier.Backend {
		return classifier.NewHTTPInferer(tracer, baseURL, modelID, timeout, limiter)
	}
	startSweeperFunc       = func(s *job.RetentionSweeper, ctx context.Context) { go s.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Chart Signal API
// @version         1.0
// @description     Classifies financial chart images with four models and turns their labels into a Buy, Sell or Neutral call.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	if err := loadEnvFunc(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := loadConfigFunc()
	if err := initLoggingFunc(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Warn().Err(err).Msg("invalid logging config, keeping defaults")
	}
	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initPostgresFunc(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize postgres")
	}
	defer db.Close()
	if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize redis")
	}

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	models, err := loadModels(ctx, tracer, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load models")
	}
	orch := orchestrator.New(tracer, models)

	var store service.ReportStore
	if db.Pool != nil {
		repo := repository.NewReportRepository(db.Pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		store = repo
		startSweeperFunc(job.NewRetentionSweeper(tracer, repo, cfg.HistoryRetentionDays, cfg.HistorySweepSecs), ctx)
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}

	svc := service.NewClassificationService(tracer, orch, store, redisClient, time.Duration(cfg.ReportCacheTTLSecs)*time.Second)

	startTelegramBotFunc(cfg.TelegramBotToken, svc)

	h := handler.New(tracer, svc, cfg.APIKey, cfg.MaxUploadBytes)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}

// loadModels connects every configured model ID to the model server and
// confirms it is ready.
func loadModels(ctx context.Context, tracer trace.Tracer, cfg *config.Config) ([]orchestrator.Classifier, error) {
	limiter := classifier.NewRateLimiter(cfg.InferenceRatePerSec)
	timeout := time.Duration(cfg.InferenceTimeoutSecs) * time.Second

	loaded, err := classifier.LoadModels(ctx, tracer, cfg.ModelIDs, func(id string) classifier.Backend {
		return newBackendFunc(tracer, cfg.InferenceURL, id, timeout, limiter)
	})
	if err != nil {
		return nil, err
	}
	models := make([]orchestrator.Classifier, len(loaded))
	for i, m := range loaded {
		models[i] = m
	}
	return models, nil
}
