package config

import (
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_PORT", "API_KEY", "INFERENCE_URL", "MODEL_IDS", "INFERENCE_TIMEOUT_SECS",
		"INFERENCE_RATE_PER_SEC", "MAX_UPLOAD_BYTES", "REDIS_URL", "REPORT_CACHE_TTL_SECS",
		"DATABASE_URL", "HISTORY_RETENTION_DAYS", "HISTORY_SWEEP_SECS", "TELEGRAM_BOT_TOKEN",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.HTTPPort != 8080 || cfg.InferenceTimeoutSecs != 30 || cfg.InferenceRatePerSec != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.InferenceURL != "http://localhost:8501" {
		t.Fatalf("unexpected inference url: %s", cfg.InferenceURL)
	}
	if !reflect.DeepEqual(cfg.ModelIDs, DefaultModelIDs) {
		t.Fatalf("unexpected model ids: %+v", cfg.ModelIDs)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log config: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("API_KEY", "secret")
	t.Setenv("INFERENCE_URL", "http://models:8501/")
	t.Setenv("MODEL_IDS", "a, b ,c,d")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("LOG_FORMAT", "Console")

	cfg := Load()
	if cfg.HTTPPort != 9090 || cfg.APIKey != "secret" || cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.InferenceURL != "http://models:8501" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.InferenceURL)
	}
	if !reflect.DeepEqual(cfg.ModelIDs, []string{"a", "b", "c", "d"}) {
		t.Fatalf("unexpected model ids: %+v", cfg.ModelIDs)
	}
	if cfg.LogFormat != "console" {
		t.Fatalf("expected console format, got %s", cfg.LogFormat)
	}
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "bad")
	t.Setenv("INFERENCE_TIMEOUT_SECS", "-4")
	t.Setenv("MODEL_IDS", "only,three,models")
	t.Setenv("LOG_FORMAT", "xml")

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Fatalf("invalid port should fall back to default, got %d", cfg.HTTPPort)
	}
	if cfg.InferenceTimeoutSecs != 30 {
		t.Fatalf("negative timeout should fall back to default, got %d", cfg.InferenceTimeoutSecs)
	}
	if !reflect.DeepEqual(cfg.ModelIDs, DefaultModelIDs) {
		t.Fatalf("wrong model count should fall back to defaults, got %+v", cfg.ModelIDs)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("unsupported format should fall back to json, got %s", cfg.LogFormat)
	}
}
