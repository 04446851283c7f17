package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var DefaultModelIDs = []string{
	"chart_patterns_1",
	"chart_patterns_2",
	"chart_patterns_3",
	"chart_patterns_4",
}

type Config struct {
	HTTPPort int
	APIKey   string

	InferenceURL         string
	ModelIDs             []string
	InferenceTimeoutSecs int
	InferenceRatePerSec  int
	MaxUploadBytes       int64

	RedisURL           string
	ReportCacheTTLSecs int

	DatabaseURL          string
	HistoryRetentionDays int
	HistorySweepSecs     int

	TelegramBotToken string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
	}

	if cfg.APIKey == "" {
		log.Warn().Msg("API_KEY not set, classification endpoints are unauthenticated")
	}
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, report history disabled")
	}
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.HTTPPort = positiveInt("HTTP_PORT", 8080)

	cfg.InferenceURL = strings.TrimRight(strings.TrimSpace(os.Getenv("INFERENCE_URL")), "/")
	if cfg.InferenceURL == "" {
		cfg.InferenceURL = "http://localhost:8501"
	}

	cfg.ModelIDs = append([]string(nil), DefaultModelIDs...)
	if v := strings.TrimSpace(os.Getenv("MODEL_IDS")); v != "" {
		ids := splitList(v)
		if len(ids) == len(DefaultModelIDs) {
			cfg.ModelIDs = ids
		} else {
			log.Warn().Int("got", len(ids)).Int("want", len(DefaultModelIDs)).Msg("MODEL_IDS must list exactly four models, using defaults")
		}
	}

	cfg.InferenceTimeoutSecs = positiveInt("INFERENCE_TIMEOUT_SECS", 30)
	cfg.InferenceRatePerSec = positiveInt("INFERENCE_RATE_PER_SEC", 20)
	cfg.MaxUploadBytes = int64(positiveInt("MAX_UPLOAD_BYTES", 10<<20))
	cfg.ReportCacheTTLSecs = positiveInt("REPORT_CACHE_TTL_SECS", 3600)
	cfg.HistoryRetentionDays = positiveInt("HISTORY_RETENTION_DAYS", 30)
	cfg.HistorySweepSecs = positiveInt("HISTORY_SWEEP_SECS", 3600)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		if cfg.LogFormat != "" {
			log.Warn().Str("format", cfg.LogFormat).Msg("unsupported LOG_FORMAT, defaulting to json")
		}
		cfg.LogFormat = "json"
	}

	return cfg
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid value, using default")
		return def
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
