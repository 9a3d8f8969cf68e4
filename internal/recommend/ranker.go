// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
)

// RankedProduct is a product with its per-signal score breakdown.
// Sub-scores are positional within each generator's list and lie in
// [0, 1]; TotalScore is their weighted sum.
type RankedProduct struct {
	// Product is the ranked product.
	Product models.Product `json:"product"`

	// RuleScore is the rule-based positional score.
	RuleScore float64 `json:"rule_score"`

	// CFScore is the collaborative-filtering positional score.
	CFScore float64 `json:"cf_score"`

	// ContentScore is the content-based positional score.
	ContentScore float64 `json:"content_score"`

	// TotalScore is the weighted sum of the sub-scores.
	TotalScore float64 `json:"total_score"`
}

// Ranker fuses candidate lists into one ranked list via weighted
// positional scoring. Only ordinal position within a generator's list is
// meaningful; there is no absolute score unit across generators.
type Ranker struct {
	logger zerolog.Logger
}

// NewRanker creates a ranker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(logger zerolog.Logger) *Ranker {
	return &Ranker{
		logger: logger.With().Str("component", "recommend").Str("stage", "ranker").Logger(),
	}
}

// Rank fuses the three candidate lists. Each list of length L gives its
// i-th product (0-indexed) the score (L-i)/L; a product absent from a list
// scores 0 on that signal. Total = w.Rule*rule + w.Collaborative*cf +
// w.Content*content, sorted descending with input-order stability for
// ties, truncated to limit.
//
// If ranking fails internally, Rank degrades to the rule-based candidates
// alone: the rule signal is the only one guaranteed always available.
func (r *Ranker) Rank(rule, cf, content []models.Product, weights Weights, limit int) (ranked []RankedProduct) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Str("panic", fmt.Sprint(rec)).
				Msg("ranking failed, degrading to rule-based candidates")
			ranked = ruleOnly(rule, limit)
		}
	}()

	index := make(map[int64]int, len(rule)+len(cf)+len(content))
	ranked = make([]RankedProduct, 0, len(rule)+len(cf)+len(content))

	// entry returns the accumulator slot for a product, inserting one in
	// first-seen order so the later stable sort keeps insertion order on
	// ties.
	entry := func(p *models.Product) *RankedProduct {
		if pos, ok := index[p.ID]; ok {
			return &ranked[pos]
		}
		index[p.ID] = len(ranked)
		ranked = append(ranked, RankedProduct{Product: *p})
		return &ranked[len(ranked)-1]
	}

	for i := range rule {
		entry(&rule[i]).RuleScore = positionalScore(i, len(rule))
	}
	for i := range cf {
		entry(&cf[i]).CFScore = positionalScore(i, len(cf))
	}
	for i := range content {
		entry(&content[i]).ContentScore = positionalScore(i, len(content))
	}

	for i := range ranked {
		ranked[i].TotalScore = weights.Rule*ranked[i].RuleScore +
			weights.Collaborative*ranked[i].CFScore +
			weights.Content*ranked[i].ContentScore
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// positionalScore converts a 0-indexed list position into a score in
// (0, 1]: the head of a list of length n scores 1.0, the tail 1/n.
func positionalScore(index, length int) float64 {
	return float64(length-index) / float64(length)
}

// ruleOnly wraps the rule candidates as the degraded ranking result.
func ruleOnly(rule []models.Product, limit int) []RankedProduct {
	if limit > 0 && len(rule) > limit {
		rule = rule[:limit]
	}
	ranked := make([]RankedProduct, len(rule))
	for i := range rule {
		score := positionalScore(i, len(rule))
		ranked[i] = RankedProduct{Product: rule[i], RuleScore: score, TotalScore: score}
	}
	return ranked
}

// Products extracts the bare product list from a ranked result.
func Products(ranked []RankedProduct) []models.Product {
	products := make([]models.Product, len(ranked))
	for i := range ranked {
		products[i] = ranked[i].Product
	}
	return products
}
