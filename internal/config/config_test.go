package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ScoreFeedRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SCOREFEED_ENABLED", "true")
	t.Setenv("SCOREFEED_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SCOREFEED_ENABLED=true without SCOREFEED_TOKEN")
	}
}

func TestLoad_WebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("WEBHOOK_ENABLED", "true")
	t.Setenv("WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when WEBHOOK_ENABLED=true without WEBHOOK_URL")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.JWTIssuer != "survivor-league" {
		t.Fatalf("unexpected JWTIssuer: %q", cfg.JWTIssuer)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected JWTTTL: %s", cfg.JWTTTL)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ScoreFeedEnabled {
		t.Fatalf("expected score feed disabled by default")
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_ScoreFeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SCOREFEED_ENABLED", "true")
	t.Setenv("SCOREFEED_TOKEN", "feed-token")
	t.Setenv("SCOREFEED_TIMEOUT", "5s")
	t.Setenv("SCOREFEED_MAX_RETRIES", "3")
	t.Setenv("SCOREFEED_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.ScoreFeedEnabled {
		t.Fatalf("expected ScoreFeedEnabled=true")
	}
	if cfg.ScoreFeedTimeout != 5*time.Second {
		t.Fatalf("unexpected ScoreFeedTimeout: %s", cfg.ScoreFeedTimeout)
	}
	if cfg.ScoreFeedMaxRetries != 3 {
		t.Fatalf("unexpected ScoreFeedMaxRetries: %d", cfg.ScoreFeedMaxRetries)
	}
	if cfg.ScoreFeedCircuitFailureCount != 7 {
		t.Fatalf("unexpected ScoreFeedCircuitFailureCount: %d", cfg.ScoreFeedCircuitFailureCount)
	}
}
