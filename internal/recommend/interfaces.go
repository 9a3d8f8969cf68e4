// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"context"
	"time"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// Catalog is the read-only product catalog collaborator. It is typically
// implemented by the storage layer; the interface lives here to keep this
// package free of database imports.
type Catalog interface {
	// Find returns products matching the filter, newest first.
	Find(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
}

// InteractionHistory is the read-only order-history collaborator.
type InteractionHistory interface {
	// PurchasesOf returns the user's purchases from settled orders
	// (paid, shipped or completed), newest first.
	PurchasesOf(ctx context.Context, userID int64) ([]models.Purchase, error)

	// OverlappingUsers returns, for every other user who purchased any
	// of the given products in a settled order, their overlap with the
	// product set.
	OverlappingUsers(ctx context.Context, userID int64, productIDs []int64) ([]models.UserOverlap, error)

	// PurchaseCounts returns in-stock products purchased by the given
	// users in settled orders, optionally narrowed by filter, ordered by
	// descending purchase count.
	PurchaseCounts(ctx context.Context, userIDs []int64, filter models.ProductFilter, limit int) ([]models.Product, error)

	// PopularProducts returns in-stock products ordered by units sold in
	// settled orders since the given time, then by recency, optionally
	// narrowed by filter.
	PopularProducts(ctx context.Context, filter models.ProductFilter, since time.Time, limit int) ([]models.Product, error)
}

// Generator produces an ordered candidate list, most relevant first, for
// one recommendation signal. Generators are read-only and must yield an
// empty list rather than failing the caller when no candidates qualify.
type Generator interface {
	// Name returns the signal identifier (e.g. "rule_based").
	Name() string

	// Generate returns candidates for the entities and user. userID 0
	// means anonymous.
	Generate(ctx context.Context, entities nlp.EntitySet, userID int64, limit int) ([]models.Product, error)
}
