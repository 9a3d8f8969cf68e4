// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package metrics provides Prometheus instrumentation for the dialogue
// loop, the recommendation engine and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dialogue metrics
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crs_dialogue_turns_total",
			Help: "Total number of processed dialogue turns",
		},
		[]string{"intent"},
	)

	TurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crs_dialogue_turn_duration_seconds",
			Help:    "Duration of dialogue turn processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Recommendation metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crs_recommendations_total",
			Help: "Total number of produced recommendation sets",
		},
		[]string{"algorithm"},
	)

	DegradedTurns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crs_degraded_turns_total",
			Help: "Total number of turns answered with a degraded error reply",
		},
	)

	ClassifierFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crs_classifier_fallbacks_total",
			Help: "Total number of turns where intent classification fell back to rules",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crs_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crs_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordTurn records one processed dialogue turn with its produced
// algorithm label, empty for canned replies.
func RecordTurn(intent string, algorithm string, duration time.Duration) {
	TurnsTotal.WithLabelValues(intent).Inc()
	TurnDuration.Observe(duration.Seconds())
	if algorithm != "" {
		RecommendationsTotal.WithLabelValues(algorithm).Inc()
	}
	if algorithm == "error" {
		DegradedTurns.Inc()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
