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

const (
	// maxPurchaseSeeds is how many recent purchases seed the similarity
	// search for a user with order history.
	maxPurchaseSeeds = 5

	// maxFilterSeeds is how many rule-filtered products seed the search
	// for anonymous or cold-start users.
	maxFilterSeeds = 3
)

// ContentBased generates candidates by same-category similarity around
// seed products: the user's recent purchases when available, otherwise
// products matching the current entity filter.
type ContentBased struct {
	catalog Catalog
	history InteractionHistory
	logger  zerolog.Logger
}

// NewContentBased creates a content-based generator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentBased(catalog Catalog, history InteractionHistory, logger zerolog.Logger) *ContentBased {
	return &ContentBased{
		catalog: catalog,
		history: history,
		logger:  logger.With().Str("component", "recommend").Str("generator", "content").Logger(),
	}
}

// Name returns the signal identifier.
func (g *ContentBased) Name() string { return "content" }

// Generate finds in-stock products in the same category as each seed,
// excluding the seed itself and narrowed by brand and price constraints
// from the entities. Up to limit/2 candidates per seed are concatenated,
// de-duplicated preserving first-seen order, and truncated to limit.
func (g *ContentBased) Generate(ctx context.Context, entities nlp.EntitySet, userID int64, limit int) ([]models.Product, error) {
	seeds, err := g.seedProducts(ctx, entities, userID)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		g.logger.Debug().Int64("user_id", userID).Msg("no seed products")
		return nil, nil
	}

	perSeed := limit / 2
	if perSeed < 1 {
		perSeed = 1
	}

	var candidates []models.Product
	for i := range seeds {
		similar, err := g.similarTo(ctx, &seeds[i], entities, perSeed)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, similar...)
	}

	return dedupeProducts(candidates, limit), nil
}

// seedProducts prefers the user's most recent settled purchases; without
// any it falls back to products matching the current entity filter.
func (g *ContentBased) seedProducts(ctx context.Context, entities nlp.EntitySet, userID int64) ([]models.Product, error) {
	if userID > 0 {
		purchases, err := g.history.PurchasesOf(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("seed purchases: %w", err)
		}
		if len(purchases) > maxPurchaseSeeds {
			purchases = purchases[:maxPurchaseSeeds]
		}
		if len(purchases) > 0 {
			seeds := make([]models.Product, len(purchases))
			for i := range purchases {
				seeds[i] = purchases[i].Product
			}
			return seeds, nil
		}
	}

	filter := buildFilter(entities)
	filter.InStock = true
	filter.Limit = maxFilterSeeds

	seeds, err := g.catalog.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("seed lookup: %w", err)
	}
	return seeds, nil
}

// similarTo returns in-stock products sharing the seed's category,
// excluding the seed, narrowed by the entities' brand and price
// constraints when present.
func (g *ContentBased) similarTo(ctx context.Context, seed *models.Product, entities nlp.EntitySet, limit int) ([]models.Product, error) {
	filter := models.ProductFilter{
		CategoryID: seed.CategoryID,
		ExcludeID:  seed.ID,
		Brand:      entities.Brand,
		InStock:    true,
		Limit:      limit,
	}
	filter.MinPrice, filter.MaxPrice, filter.MaxPriceExclusive = priceBounds(entities)

	similar, err := g.catalog.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("similar to product %d: %w", seed.ID, err)
	}
	return similar, nil
}

// dedupeProducts removes duplicate products by identity, preserving
// first-seen order, and truncates to limit.
func dedupeProducts(products []models.Product, limit int) []models.Product {
	seen := make(map[int64]struct{}, len(products))
	unique := make([]models.Product, 0, len(products))
	for i := range products {
		if _, ok := seen[products[i].ID]; ok {
			continue
		}
		seen[products[i].ID] = struct{}{}
		unique = append(unique, products[i])
		if limit > 0 && len(unique) >= limit {
			break
		}
	}
	return unique
}
