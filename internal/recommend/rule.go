// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// RuleBased generates candidates by filtering the catalog with the
// conjunction of all constrained entity fields. It is the one signal that
// is always available: it needs no user history and only goes empty when
// the catalog has no matching stock at all.
type RuleBased struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewRuleBased creates a rule-based generator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRuleBased(catalog Catalog, logger zerolog.Logger) *RuleBased {
	return &RuleBased{
		catalog: catalog,
		logger:  logger.With().Str("component", "recommend").Str("generator", "rule_based").Logger(),
	}
}

// Name returns the signal identifier.
func (g *RuleBased) Name() string { return "rule_based" }

// Generate returns in-stock products matching every constrained entity
// field, newest first. When the full conjunction yields nothing and a
// category constraint was present, it retries with category-only: a brand
// or feature mismatch alone must not empty the result.
func (g *RuleBased) Generate(ctx context.Context, entities nlp.EntitySet, _ int64, limit int) ([]models.Product, error) {
	filter := buildFilter(entities)
	filter.InStock = true
	filter.Limit = limit

	products, err := g.catalog.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("rule-based query: %w", err)
	}

	if len(products) == 0 && entities.Category != "" {
		g.logger.Debug().
			Str("category", entities.Category).
			Msg("full conjunction empty, retrying with category only")

		products, err = g.catalog.Find(ctx, models.ProductFilter{
			Category: entities.Category,
			InStock:  true,
			Limit:    limit,
		})
		if err != nil {
			return nil, fmt.Errorf("category-only retry: %w", err)
		}
	}

	return products, nil
}
