package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"redflag-lab/internal/ai"
	"redflag-lab/internal/api"
	"redflag-lab/internal/api/handlers"
	"redflag-lab/internal/config"
	"redflag-lab/internal/domain/services"
	"redflag-lab/internal/infrastructure/cache"
	"redflag-lab/internal/knowledge"
	"redflag-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting RedFlag Lab")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; it only backs the rate limiter
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, rate limiting disabled")
			redisCache = nil
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// External classifier is optional; absence of a credential means
	// heuristic-only mode for the whole process
	var classifier services.ModelClassifier
	if cfg.LLM.Enabled() {
		c, err := ai.NewClassifier(ai.Config{
			Provider:     cfg.LLM.Provider,
			ClaudeAPIKey: cfg.LLM.ClaudeAPIKey,
			OpenAIAPIKey: cfg.LLM.OpenAIAPIKey,
			Model:        cfg.LLM.Model,
			MaxTokens:    cfg.LLM.MaxTokens,
			Temperature:  cfg.LLM.Temperature,
			Timeout:      cfg.LLM.Timeout,
		}, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize classifier, running heuristic-only")
		} else {
			classifier = c
			log.Info().Str("provider", cfg.LLM.Provider).Msg("external classifier enabled")
		}
	} else {
		log.Info().Msg("no classifier credential configured, running heuristic-only")
	}

	// Knowledge base is loaded once and immutable for the process lifetime
	retriever := knowledge.NewRetriever(knowledge.DefaultEntries())

	analyzer := services.NewMessageAnalyzer(retriever, classifier, services.AnalyzerOptions{
		MaxEntities:  cfg.Analysis.MaxEntities,
		MaxSpans:     cfg.Analysis.MaxSpans,
		ContextChars: cfg.LLM.ContextChars,
	}, log)

	h := handlers.NewHandlers(handlers.Dependencies{
		Analyzer: analyzer,
		Cache:    redisCache,
		Config:   cfg,
		Logger:   log,
	})

	router := api.NewRouter(cfg, h, redisCache, log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("shutdown complete")
}
