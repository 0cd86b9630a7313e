package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estimation_backend/internal/estimation"
	"estimation_backend/internal/estimation/aiclient"
	"estimation_backend/internal/estimation/engine"
	"estimation_backend/internal/estimation/heuristic"
	"estimation_backend/internal/estimation/ports"
	apphttp "estimation_backend/internal/http"
	"estimation_backend/internal/http/router"
	"estimation_backend/platform/config"
	"estimation_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := heuristic.LoadTables(cfg.GetHeuristicTablesFile())
	if err != nil {
		log.Error("failed to load heuristic tables", "error", err)
		panic("failed to load heuristic tables: " + err.Error())
	}
	estimator := heuristic.New(tables)

	backend, err := initBackend(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize AI backend", "error", err)
		panic("failed to initialize AI backend: " + err.Error())
	}

	eng := engine.New(backend, estimator, engine.Config{
		Timeout:    cfg.GetAITimeout(),
		MatchLimit: cfg.GetMatchLimit(),
	}, log)

	modules := []apphttp.Module{
		estimation.NewModule(eng),
	}

	ginEngine := router.New(cfg, log, modules)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: ginEngine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initBackend builds the configured AI backend. A nil backend is valid: the
// engine then serves every request from the heuristic path.
func initBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.AIBackend, error) {
	if !cfg.IsAIEnabled() {
		log.Warn("AI backend disabled; all estimates use the heuristic path")
		return nil, nil
	}

	switch cfg.GetAIProvider() {
	case config.ProviderGemini:
		return aiclient.NewGeminiClient(ctx, aiclient.GeminiConfig{
			APIKey: cfg.GetAIAPIKey(),
			Model:  cfg.GetAIModel(),
		})
	default:
		return aiclient.NewChatClient(aiclient.ChatConfig{
			APIKey:  cfg.GetAIAPIKey(),
			BaseURL: cfg.GetAIBaseURL(),
			Model:   cfg.GetAIModel(),
		}), nil
	}
}
