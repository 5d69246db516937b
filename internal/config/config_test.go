package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL by default, got %q", cfg.DBURL)
	}
	if !cfg.RateLimitEnabled {
		t.Fatalf("expected rate limiting enabled by default")
	}
	if cfg.RateLimitMax != 120 {
		t.Fatalf("unexpected RateLimitMax: %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected RateLimitWindow: %s", cfg.RateLimitWindow)
	}
	if cfg.AuditWorkerCount != 4 {
		t.Fatalf("unexpected AuditWorkerCount: %d", cfg.AuditWorkerCount)
	}
	if cfg.AccountIntrospectPath != "/v1/auth/introspect" {
		t.Fatalf("unexpected AccountIntrospectPath: %q", cfg.AccountIntrospectPath)
	}
}

func TestLoad_AuditWebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("AUDIT_WEBHOOK_ENABLED", "true")
	t.Setenv("AUDIT_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when AUDIT_WEBHOOK_ENABLED=true without AUDIT_WEBHOOK_URL")
	}
}

func TestLoad_AuditWebhookConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("AUDIT_WEBHOOK_ENABLED", "true")
	t.Setenv("AUDIT_WEBHOOK_URL", "https://audit.example.com/v1/events")
	t.Setenv("AUDIT_WEBHOOK_TOKEN", "token-123")
	t.Setenv("AUDIT_WEBHOOK_TIMEOUT", "4s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.AuditWebhookEnabled {
		t.Fatalf("expected AuditWebhookEnabled=true")
	}
	if cfg.AuditWebhookURL != "https://audit.example.com/v1/events" {
		t.Fatalf("unexpected AuditWebhookURL: %q", cfg.AuditWebhookURL)
	}
	if cfg.AuditWebhookToken != "token-123" {
		t.Fatalf("unexpected AuditWebhookToken")
	}
	if cfg.AuditWebhookTimeout != 4*time.Second {
		t.Fatalf("unexpected AuditWebhookTimeout: %s", cfg.AuditWebhookTimeout)
	}
}

func TestLoad_RateLimitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for RATE_LIMIT_MAX_REQUESTS=0")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	dsn := parseUptraceDSNFromOTLPHeaders(`uptrace-dsn="https://token@api.uptrace.dev/123"`)
	if dsn != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
	if got := parseUptraceDSNFromOTLPHeaders(""); got != "" {
		t.Fatalf("expected empty dsn, got %q", got)
	}
}
