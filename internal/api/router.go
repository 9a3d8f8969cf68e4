// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the router's middleware stack.
type RouterConfig struct {
	// CORSOrigins are the allowed CORS origins.
	CORSOrigins []string

	// RateLimitReqs is the per-IP request budget per RateLimitWindow;
	// 0 disables rate limiting.
	RateLimitReqs int

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration
}

// NewRouter builds the HTTP routing tree.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		MaxAge:         86400,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}

		r.Get("/health", handler.Health)

		r.Post("/chat/message", handler.ChatMessage)
		r.Post("/recommendations/{id}/feedback", handler.RecommendationFeedback)

		r.Get("/products", handler.Products)
		r.Get("/products/{id}", handler.Product)
		r.Get("/categories", handler.Categories)
		r.Get("/conversations/{id}/messages", handler.ConversationMessages)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
