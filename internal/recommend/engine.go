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

// Algorithm labels recorded with each produced recommendation set.
const (
	AlgorithmRuleBased         = "rule_based"
	AlgorithmHybrid            = "hybrid"
	AlgorithmContentRuleHybrid = "content_rule_hybrid"
	AlgorithmInfoQuery         = "info_query"
	AlgorithmComparison        = "comparison"
	AlgorithmError             = "error"
)

const (
	// infoLimit caps information-query results.
	infoLimit = 3

	// compareLimit caps comparison results.
	compareLimit = 5

	// compareBackfillLimit caps cross-brand backfill products added when
	// a single-brand comparison comes up short.
	compareBackfillLimit = 4
)

// Result is the outcome of one recommendation dispatch.
type Result struct {
	// Products is the ranked product list, possibly empty.
	Products []models.Product `json:"products"`

	// Message is the user-facing reply text.
	Message string `json:"message"`

	// Algorithm labels the strategy that produced the products.
	Algorithm string `json:"algorithm"`

	// ComparisonFeature carries the feature entity on comparison
	// results, empty otherwise.
	ComparisonFeature string `json:"comparison_feature,omitempty"`
}

// EngineConfig tunes the recommendation facade.
type EngineConfig struct {
	// Weights is the three-way fusion for authenticated users.
	Weights Weights

	// AnonymousWeights is the two-way fusion for anonymous users.
	AnonymousWeights Weights

	// DefaultLimit is the product count per recommendation reply.
	DefaultLimit int
}

// DefaultEngineConfig returns the default facade configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights:          DefaultWeights(),
		AnonymousWeights: AnonymousWeights(),
		DefaultLimit:     5,
	}
}

// Validate checks the configuration.
func (c EngineConfig) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.AnonymousWeights.Validate(); err != nil {
		return fmt.Errorf("anonymous weights: %w", err)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", c.DefaultLimit)
	}
	return nil
}

// Engine is the recommendation facade the dialogue manager dispatches to.
// It owns the generators and the ranker and guarantees a valid, possibly
// degraded Result for every call; it never fails a turn.
type Engine struct {
	rule       Generator
	cf         Generator
	content    Generator
	popularity Generator
	ranker     *Ranker
	catalog    Catalog
	config     EngineConfig
	logger     zerolog.Logger
}

// NewEngine creates the facade from its parts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(rule, cf, content, popularity Generator, ranker *Ranker, catalog Catalog, cfg EngineConfig, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		rule:       rule,
		cf:         cf,
		content:    content,
		popularity: popularity,
		ranker:     ranker,
		catalog:    catalog,
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// GetRecommendations dispatches by intent and returns the reply products,
// message and algorithm label. userID 0 means anonymous. Any internal
// failure degrades to an apologetic Result with the error algorithm label.
func (e *Engine) GetRecommendations(ctx context.Context, intent nlp.Intent, entities nlp.EntitySet, userID int64) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error().
				Str("intent", string(intent)).
				Int64("user_id", userID).
				Str("panic", fmt.Sprint(rec)).
				Msg("recommendation dispatch panicked")
			result = Result{Message: msgRecommendFailed, Algorithm: AlgorithmError}
		}
	}()

	switch intent {
	case nlp.IntentRecommend:
		return e.handleRecommendation(ctx, entities, userID)
	case nlp.IntentAskInfo:
		return e.handleProductInfo(ctx, entities)
	case nlp.IntentCompare:
		return e.handleComparison(ctx, entities)
	default:
		return Result{Message: msgUnsupported, Algorithm: AlgorithmError}
	}
}

// handleRecommendation runs the full hybrid flow: rule candidates first,
// then the per-user fusion, then a popularity top-up for short lists.
func (e *Engine) handleRecommendation(ctx context.Context, entities nlp.EntitySet, userID int64) Result {
	limit := e.config.DefaultLimit
	ruleCandidates := e.generate(ctx, e.rule, entities, userID, limit*2)

	// With fewer than two rule candidates there is nothing to fuse.
	if len(ruleCandidates) < 2 {
		if len(ruleCandidates) == 0 {
			return Result{Message: msgNoMatches, Algorithm: AlgorithmRuleBased}
		}
		return Result{
			Products:  ruleCandidates,
			Message:   recommendationMessage(entities),
			Algorithm: AlgorithmRuleBased,
		}
	}

	var (
		ranked    []RankedProduct
		algorithm string
	)
	if userID > 0 {
		cfCandidates := e.generate(ctx, e.cf, entities, userID, limit*2)
		contentCandidates := e.generate(ctx, e.content, entities, userID, limit*2)
		ranked = e.ranker.Rank(ruleCandidates, cfCandidates, contentCandidates, e.config.Weights, limit)
		algorithm = AlgorithmHybrid
	} else {
		contentCandidates := e.generate(ctx, e.content, entities, 0, limit*2)
		ranked = e.ranker.Rank(ruleCandidates, nil, contentCandidates, e.config.AnonymousWeights, limit)
		algorithm = AlgorithmContentRuleHybrid
	}

	products := e.padWithPopular(ctx, Products(ranked), entities, limit)

	return Result{
		Products:  products,
		Message:   recommendationMessage(entities),
		Algorithm: algorithm,
	}
}

// handleProductInfo answers an information query with a rule-filtered
// lookup capped at infoLimit.
func (e *Engine) handleProductInfo(ctx context.Context, entities nlp.EntitySet) Result {
	filter := buildFilter(entities)
	filter.InStock = true
	filter.Limit = infoLimit

	products, err := e.catalog.Find(ctx, filter)
	if err != nil {
		e.logger.Error().Err(err).Msg("information query failed")
		return Result{Message: msgInfoFailed, Algorithm: AlgorithmError}
	}

	if len(products) == 0 {
		return Result{Message: infoNotFoundMessage(entities)}
	}

	return Result{
		Products:  products,
		Message:   infoFoundMessage(entities),
		Algorithm: AlgorithmInfoQuery,
	}
}

// handleComparison answers a comparison query with a rule-filtered lookup
// capped at compareLimit. When a brand constraint left fewer than two
// products, same-category products of other brands are backfilled so
// there is something to compare against.
func (e *Engine) handleComparison(ctx context.Context, entities nlp.EntitySet) Result {
	filter := buildFilter(entities)
	filter.InStock = true
	filter.Limit = compareLimit

	products, err := e.catalog.Find(ctx, filter)
	if err != nil {
		e.logger.Error().Err(err).Msg("comparison query failed")
		return Result{Message: msgCompareFailed, Algorithm: AlgorithmError}
	}

	if len(products) == 0 {
		return Result{Message: msgCompareNotFound, Algorithm: AlgorithmComparison}
	}

	if entities.Brand != "" && len(products) < 2 {
		categoryIDs := make([]int64, 0, len(products))
		for i := range products {
			categoryIDs = append(categoryIDs, products[i].CategoryID)
		}

		others, err := e.catalog.Find(ctx, models.ProductFilter{
			CategoryIDs:  categoryIDs,
			ExcludeBrand: entities.Brand,
			InStock:      true,
			Limit:        compareBackfillLimit,
		})
		if err != nil {
			e.logger.Warn().Err(err).Msg("cross-brand backfill failed")
		} else {
			products = append(products, others...)
		}
	}

	return Result{
		Products:          products,
		Message:           compareMessage(entities),
		Algorithm:         AlgorithmComparison,
		ComparisonFeature: entities.Feature,
	}
}

// generate runs one generator, logging and absorbing its failure: a broken
// signal degrades to an empty list and the remaining signals carry the
// turn.
func (e *Engine) generate(ctx context.Context, g Generator, entities nlp.EntitySet, userID int64, limit int) []models.Product {
	products, err := g.Generate(ctx, entities, userID, limit)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("generator", g.Name()).
			Int64("user_id", userID).
			Msg("candidate generation failed")
		return nil
	}
	return products
}

// padWithPopular tops up a short product list from the popularity signal,
// de-duplicating against what is already selected.
func (e *Engine) padWithPopular(ctx context.Context, products []models.Product, entities nlp.EntitySet, limit int) []models.Product {
	if len(products) >= limit {
		return products
	}

	popular := e.generate(ctx, e.popularity, entities, 0, limit-len(products))

	selected := make(map[int64]struct{}, len(products))
	for i := range products {
		selected[products[i].ID] = struct{}{}
	}

	for i := range popular {
		if _, ok := selected[popular[i].ID]; ok {
			continue
		}
		products = append(products, popular[i])
		if len(products) >= limit {
			break
		}
	}
	return products
}
