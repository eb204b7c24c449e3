package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/flightwx/briefing-engine/internal/adapter/history"
	httpadapter "github.com/flightwx/briefing-engine/internal/adapter/http"
	kafkaadapter "github.com/flightwx/briefing-engine/internal/adapter/kafka"
	"github.com/flightwx/briefing-engine/internal/advisory"
	"github.com/flightwx/briefing-engine/internal/briefing"
	"github.com/flightwx/briefing-engine/internal/config"
	"github.com/flightwx/briefing-engine/internal/observability"
	"github.com/flightwx/briefing-engine/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize advisory history (feature-flagged via HISTORY_DB_PATH).
	var historyStore pipeline.HistoryStore
	var store *history.Store
	if cfg.HistoryEnabled() {
		store, err = history.Open(cfg.HistoryDBPath, metrics)
		if err != nil {
			logger.Error("failed to open history db", "path", cfg.HistoryDBPath, "error", err)
			os.Exit(1)
		}
		historyStore = store
		metrics.HistoryEnabled.Set(1)
		logger.Info("advisory history enabled", "path", cfg.HistoryDBPath)
	} else {
		logger.Info("advisory history disabled")
	}

	registry := advisory.Default()
	runner := briefing.NewRunner(registry, logger, clockwork.NewRealClock(), cfg.AnalysisWorkers)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(runner, historyStore, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start briefing pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("history db close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
