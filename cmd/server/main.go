// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Command server runs the conversational recommendation HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourhu/CRS-System/internal/api"
	"github.com/yourhu/CRS-System/internal/config"
	"github.com/yourhu/CRS-System/internal/dialogue"
	"github.com/yourhu/CRS-System/internal/logging"
	"github.com/yourhu/CRS-System/internal/nlp"
	"github.com/yourhu/CRS-System/internal/recommend"
	"github.com/yourhu/CRS-System/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()
	logger.Info().Msg("starting CRS server")

	store, err := storage.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database open failed")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("database close failed")
		}
	}()

	ctx := context.Background()
	if cfg.Recommend.SeedDemoData {
		if err := store.Seed(ctx); err != nil {
			logger.Fatal().Err(err).Msg("demo catalog seed failed")
		}
	}

	// The statistical intent model is optional: without an artifact the
	// rule-based classifier decides every turn.
	var statistical nlp.Classifier
	if cfg.NLP.ModelPath != "" {
		loaded, err := nlp.LoadStatisticalClassifier(cfg.NLP.ModelPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.NLP.ModelPath).
				Msg("statistical model unavailable, running on rules alone")
		} else {
			statistical = loaded
			logger.Info().Str("path", cfg.NLP.ModelPath).Msg("statistical intent model loaded")
		}
	}
	processor := nlp.NewProcessor(statistical, logger)

	rule := recommend.NewRuleBased(store, logger)
	collaborative := recommend.NewCollaborative(store, recommend.DefaultCollaborativeConfig(), logger)
	content := recommend.NewContentBased(store, store, logger)
	popularity := recommend.NewPopularity(store, logger)
	ranker := recommend.NewRanker(logger)

	engine, err := recommend.NewEngine(rule, collaborative, content, popularity,
		ranker, store, cfg.Recommend.EngineConfig(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("recommendation engine setup failed")
	}

	manager := dialogue.NewManager(processor, engine, store, logger)

	handler := api.NewHandler(manager, store, store, store, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
