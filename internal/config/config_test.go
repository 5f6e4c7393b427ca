package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "HTTP_TIMEOUT_SECONDS", "ATTRIBUTION_WINDOW_DAYS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Port != "8080" || cfg.StoreDriver != "postgres" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.AttributionWindow != 30*24*time.Hour {
		t.Fatalf("expected 30d window, got %v", cfg.AttributionWindow)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("ATTRIBUTION_WINDOW_DAYS", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	if cfg.Port != "9090" || cfg.StoreDriver != "memory" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.AttributionWindow != 7*24*time.Hour {
		t.Fatalf("expected 7d window, got %v", cfg.AttributionWindow)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")
	t.Setenv("ATTRIBUTION_WINDOW_DAYS", "-3")

	cfg := FromEnv()
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("bad timeout must fall back to default, got %v", cfg.HTTPTimeout)
	}
	if cfg.AttributionWindow != 30*24*time.Hour {
		t.Fatalf("bad window must fall back to default, got %v", cfg.AttributionWindow)
	}
}
