package config

import (
	"strings"
	"testing"
	"time"

	"github.com/robokrystal/stgmonitoradar/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ODDSMONITOR_ANON_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("expected default ttl 60s, got %s", cfg.CacheTTL)
	}
	if !cfg.ServeStaleOnFailure {
		t.Fatalf("expected stale serving on by default")
	}
	if cfg.OddsMonitorTimeout != 15*time.Second {
		t.Fatalf("expected default provider timeout 15s, got %s", cfg.OddsMonitorTimeout)
	}
	if cfg.OddsMonitorAnonKey != "test-key" {
		t.Fatalf("unexpected anon key %q", cfg.OddsMonitorAnonKey)
	}
	if cfg.FreebetMaxWorkers != 8 {
		t.Fatalf("expected default worker count 8, got %d", cfg.FreebetMaxWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ODDSMONITOR_ANON_KEY", "test-key")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_HTTP_ADDR", ":9090")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("ODDSMONITOR_SERVE_STALE", "false")
	t.Setenv("ODDSMONITOR_MAX_RETRIES", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("expected prod env, got %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("unexpected ttl %s", cfg.CacheTTL)
	}
	if cfg.ServeStaleOnFailure {
		t.Fatalf("expected stale serving disabled")
	}
	if cfg.OddsMonitorMaxRetries != 3 {
		t.Fatalf("unexpected retries %d", cfg.OddsMonitorMaxRetries)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoad_RequiresAnonKey(t *testing.T) {
	t.Setenv("ODDSMONITOR_ANON_KEY", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ODDSMONITOR_ANON_KEY") {
		t.Fatalf("expected missing anon key error, got %v", err)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"APP_ENV", "staging-2"},
		{"CACHE_TTL", "sixty"},
		{"CACHE_TTL", "-5s"},
		{"ODDSMONITOR_TIMEOUT", "0s"},
		{"ODDSMONITOR_MAX_RETRIES", "-1"},
		{"ODDSMONITOR_SERVE_STALE", "maybe"},
		{"FREEBET_MAX_WORKERS", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("ODDSMONITOR_ANON_KEY", "test-key")
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%q to be rejected", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("ODDSMONITOR_ANON_KEY", "test-key")
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "UPTRACE_DSN") {
		t.Fatalf("expected missing dsn error, got %v", err)
	}

	t.Setenv("UPTRACE_DSN", "https://token@uptrace.test/1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.UptraceEnabled {
		t.Fatalf("expected uptrace enabled")
	}
}
