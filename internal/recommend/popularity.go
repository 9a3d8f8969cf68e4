// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// popularityWindow is the trailing sales window for popularity ranking.
const popularityWindow = 30 * 24 * time.Hour

// Popularity ranks products by units sold in a trailing window. It is not
// a primary signal: the engine uses it only to pad result lists that came
// up short.
type Popularity struct {
	history InteractionHistory
	logger  zerolog.Logger
	now     func() time.Time
}

// NewPopularity creates a popularity generator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPopularity(history InteractionHistory, logger zerolog.Logger) *Popularity {
	return &Popularity{
		history: history,
		logger:  logger.With().Str("component", "recommend").Str("generator", "popularity").Logger(),
		now:     time.Now,
	}
}

// Name returns the signal identifier.
func (g *Popularity) Name() string { return "popularity" }

// Generate returns in-stock products ordered by descending units sold over
// the trailing window, then by recency, narrowed to the entity category
// when present.
func (g *Popularity) Generate(ctx context.Context, entities nlp.EntitySet, _ int64, limit int) ([]models.Product, error) {
	filter := models.ProductFilter{Category: entities.Category}
	since := g.now().Add(-popularityWindow)

	products, err := g.history.PopularProducts(ctx, filter, since, limit)
	if err != nil {
		return nil, fmt.Errorf("popular products: %w", err)
	}
	return products, nil
}
