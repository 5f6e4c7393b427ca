package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/metricaclick/attribution-go/internal/attribution"
	"github.com/metricaclick/attribution-go/internal/config"
	"github.com/metricaclick/attribution-go/internal/httpx"
	"github.com/metricaclick/attribution-go/internal/reporting"
	"github.com/metricaclick/attribution-go/internal/seed"
	"github.com/metricaclick/attribution-go/internal/store"
	"github.com/metricaclick/attribution-go/internal/tracking"
	"github.com/metricaclick/attribution-go/internal/utils"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("store init failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	trk := tracking.NewService(st, logger)
	attr := attribution.NewService(st, logger, cfg.AttributionWindow)
	rep := reporting.NewService(st)
	sd := seed.NewService(st)

	r := httpx.NewRouter(logger, trk, attr, rep, sd)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTPTimeout,
		WriteTimeout:      cfg.HTTPTimeout,
	}

	logger.Info("starting server",
		slog.String("port", cfg.Port),
		slog.String("store", cfg.StoreDriver),
		slog.Duration("attribution_window", cfg.AttributionWindow))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func openStore(cfg config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var st *store.PostgresStore
	err := utils.NewBackoff(time.Second, 4).Do(ctx, func(i int) error {
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres not ready", slog.Int("attempt", i+1), slog.String("err", err.Error()))
			return err
		}
		st = store.NewPostgresStore(pool)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
