// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// buildFilter translates an entity set into a conjunctive catalog filter:
// category name contains match, brand on name or specs, feature on
// description or specs, and a price constraint. An explicit numeric price
// takes precedence over a named band and becomes a ±20% window.
func buildFilter(entities nlp.EntitySet) models.ProductFilter {
	filter := models.ProductFilter{
		Category: entities.Category,
		Brand:    entities.Brand,
		Feature:  entities.Feature,
	}
	filter.MinPrice, filter.MaxPrice, filter.MaxPriceExclusive = priceBounds(entities)
	return filter
}

// priceBounds resolves the entity set's price constraint to bounds.
// Zero bounds mean unconstrained on that side.
func priceBounds(entities nlp.EntitySet) (minPrice, maxPrice float64, maxExclusive bool) {
	if entities.Price > 0 {
		price := float64(entities.Price)
		return price * 0.8, price * 1.2, false
	}

	switch entities.PriceRange {
	case "1000以下":
		return 0, 1000, true
	case "1000-2000":
		return 1000, 2000, false
	case "2000-3000":
		return 2000, 3000, false
	case "3000-5000":
		return 3000, 5000, false
	case "5000-8000":
		return 5000, 8000, false
	case "8000以上":
		return 8000, 0, false
	default:
		return 0, 0, false
	}
}
