// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// CollaborativeConfig tunes the neighbor selection.
type CollaborativeConfig struct {
	// MinSimilarity is the minimum Jaccard-like overlap a neighbor must
	// reach to count. Default: 0.3.
	MinSimilarity float64

	// MaxNeighbors caps the neighbor set. Default: 20.
	MaxNeighbors int
}

// DefaultCollaborativeConfig returns the default neighbor selection
// parameters.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		MinSimilarity: 0.3,
		MaxNeighbors:  20,
	}
}

// Collaborative generates candidates from the purchases of users whose
// order history overlaps the current user's. A user with no settled orders
// has no neighbors; the cold-start result is an empty list, never an
// error.
type Collaborative struct {
	history InteractionHistory
	config  CollaborativeConfig
	logger  zerolog.Logger
}

// NewCollaborative creates a collaborative-filtering generator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborative(history InteractionHistory, cfg CollaborativeConfig, logger zerolog.Logger) *Collaborative {
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = 0.3
	}
	if cfg.MaxNeighbors <= 0 {
		cfg.MaxNeighbors = 20
	}
	return &Collaborative{
		history: history,
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Str("generator", "collaborative").Logger(),
	}
}

// Name returns the signal identifier.
func (g *Collaborative) Name() string { return "collaborative" }

// Generate finds the user's similar users and ranks the neighbors'
// purchases by purchase count, optionally narrowed by category and brand
// constraints from the entities.
func (g *Collaborative) Generate(ctx context.Context, entities nlp.EntitySet, userID int64, limit int) ([]models.Product, error) {
	neighbors, err := g.similarUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		g.logger.Debug().Int64("user_id", userID).Msg("no similar users, cold start")
		return nil, nil
	}

	filter := models.ProductFilter{
		Category: entities.Category,
		Brand:    entities.Brand,
	}

	products, err := g.history.PurchaseCounts(ctx, neighbors, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("neighbor purchase counts: %w", err)
	}
	return products, nil
}

// similarUsers returns up to MaxNeighbors user IDs whose settled-order
// purchase sets overlap the current user's with similarity at or above
// MinSimilarity, most similar first.
func (g *Collaborative) similarUsers(ctx context.Context, userID int64) ([]int64, error) {
	purchases, err := g.history.PurchasesOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user purchases: %w", err)
	}
	if len(purchases) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(purchases))
	productIDs := make([]int64, 0, len(purchases))
	for i := range purchases {
		id := purchases[i].Product.ID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		productIDs = append(productIDs, id)
	}

	overlaps, err := g.history.OverlappingUsers(ctx, userID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("overlapping users: %w", err)
	}

	qualified := make([]models.UserOverlap, 0, len(overlaps))
	for _, o := range overlaps {
		if o.Similarity() >= g.config.MinSimilarity {
			qualified = append(qualified, o)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Similarity() > qualified[j].Similarity()
	})
	if len(qualified) > g.config.MaxNeighbors {
		qualified = qualified[:g.config.MaxNeighbors]
	}

	neighbors := make([]int64, len(qualified))
	for i, o := range qualified {
		neighbors[i] = o.UserID
	}

	g.logger.Debug().
		Int64("user_id", userID).
		Int("neighbors", len(neighbors)).
		Msg("selected similar users")

	return neighbors, nil
}
