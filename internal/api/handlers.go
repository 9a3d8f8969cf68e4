// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/dialogue"
	"github.com/yourhu/CRS-System/internal/metrics"
	"github.com/yourhu/CRS-System/internal/models"
)

// DialogueService is the dialogue collaborator the chat handlers need.
type DialogueService interface {
	ProcessMessage(ctx context.Context, userID int64, text string) dialogue.TurnResult
	SubmitFeedback(ctx context.Context, recommendationID int64, feedback string) error
}

// CatalogReader serves the catalog read endpoints.
type CatalogReader interface {
	Find(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// HistoryReader serves the conversation history endpoint.
type HistoryReader interface {
	Messages(ctx context.Context, conversationID int64) ([]models.Message, error)
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	dialogue DialogueService
	catalog  CatalogReader
	history  HistoryReader
	pinger   Pinger
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHandler creates the handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(dialogueSvc DialogueService, catalog CatalogReader, history HistoryReader, pinger Pinger, logger zerolog.Logger) *Handler {
	return &Handler{
		dialogue: dialogueSvc,
		catalog:  catalog,
		history:  history,
		pinger:   pinger,
		validate: validator.New(),
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// ChatRequest is the chat turn request body.
type ChatRequest struct {
	// UserID is the authenticated user, 0 or absent for anonymous.
	UserID int64 `json:"user_id" validate:"gte=0"`

	// Text is the user's utterance.
	Text string `json:"text" validate:"required"`
}

// ChatMessage handles POST /api/v1/chat/message: one dialogue turn.
func (h *Handler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be non-negative and text must not be empty")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be blank")
		return
	}

	start := time.Now()
	result := h.dialogue.ProcessMessage(r.Context(), req.UserID, req.Text)
	metrics.RecordTurn(string(result.Intent), result.Algorithm, time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

// FeedbackRequest is the recommendation feedback request body.
type FeedbackRequest struct {
	// Feedback is the user's reaction label (e.g. like, dislike).
	Feedback string `json:"feedback" validate:"required"`
}

// RecommendationFeedback handles POST
// /api/v1/recommendations/{id}/feedback.
func (h *Handler) RecommendationFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid recommendation id")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "feedback must not be empty")
		return
	}

	if err := h.dialogue.SubmitFeedback(r.Context(), id, req.Feedback); err != nil {
		h.logger.Warn().Err(err).Int64("recommendation_id", id).Msg("feedback rejected")
		writeError(w, http.StatusNotFound, "recommendation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Products handles GET /api/v1/products with optional category, brand,
// in_stock and limit query parameters.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ProductFilter{
		Category: query.Get("category"),
		Brand:    query.Get("brand"),
		InStock:  query.Get("in_stock") == "true",
		Limit:    20,
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		filter.Limit = limit
	}

	products, err := h.catalog.Find(r.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("product listing failed")
		writeError(w, http.StatusInternalServerError, "product listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products, "count": len(products)})
}

// Product handles GET /api/v1/products/{id}.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("product_id", id).Msg("product lookup failed")
		writeError(w, http.StatusInternalServerError, "product lookup failed")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("category listing failed")
		writeError(w, http.StatusInternalServerError, "category listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// ConversationMessages handles GET
// /api/v1/conversations/{id}/messages: the chronological message log.
func (h *Handler) ConversationMessages(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	messages, err := h.history.Messages(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("conversation_id", id).Msg("message log read failed")
		writeError(w, http.StatusInternalServerError, "message log read failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.pinger.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("health check: database unreachable")
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}
