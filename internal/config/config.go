package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	StoreDriver       string // "postgres" or "memory"
	DatabaseURL       string
	AttributionWindow time.Duration
	HTTPTimeout       time.Duration
	LogLevel          slog.Level
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	window := 30
	if v := os.Getenv("ATTRIBUTION_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			window = n
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		Port:              envOr("PORT", "8080"),
		StoreDriver:       envOr("STORE_DRIVER", "postgres"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AttributionWindow: time.Duration(window) * 24 * time.Hour,
		HTTPTimeout:       to,
		LogLevel:          lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
