// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

func TestCollaborativeColdStart(t *testing.T) {
	history := &fakeHistory{}
	g := NewCollaborative(history, DefaultCollaborativeConfig(), zerolog.Nop())

	products, err := g.Generate(context.Background(), nlp.EntitySet{}, 42, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products for cold-start user, want 0", len(products))
	}
	if history.overlapsCalled {
		t.Error("overlap query must be skipped when the user has no purchases")
	}
}

func TestCollaborativeSimilarityThreshold(t *testing.T) {
	history := &fakeHistory{
		purchases: []models.Purchase{purchaseOf(product(1, "A")), purchaseOf(product(2, "B"))},
		overlaps: []models.UserOverlap{
			{UserID: 10, CommonProducts: 2, TotalProducts: 4},  // 0.5: qualifies
			{UserID: 11, CommonProducts: 1, TotalProducts: 10}, // 0.1: below threshold
			{UserID: 12, CommonProducts: 2, TotalProducts: 2},  // 1.0: qualifies
		},
		counts: []models.Product{product(3, "C")},
	}
	g := NewCollaborative(history, DefaultCollaborativeConfig(), zerolog.Nop())

	products, err := g.Generate(context.Background(), nlp.EntitySet{}, 42, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(products) != 1 || products[0].ID != 3 {
		t.Errorf("products = %+v, want neighbor purchases [3]", products)
	}

	// Neighbors ordered most similar first, the sub-threshold user gone.
	want := []int64{12, 10}
	if len(history.countsUserIDs) != len(want) {
		t.Fatalf("neighbor IDs = %v, want %v", history.countsUserIDs, want)
	}
	for i, id := range want {
		if history.countsUserIDs[i] != id {
			t.Errorf("neighbor[%d] = %d, want %d", i, history.countsUserIDs[i], id)
		}
	}
}

func TestCollaborativeNeighborCap(t *testing.T) {
	overlaps := make([]models.UserOverlap, 30)
	for i := range overlaps {
		overlaps[i] = models.UserOverlap{UserID: int64(100 + i), CommonProducts: 1, TotalProducts: 2}
	}
	history := &fakeHistory{
		purchases: []models.Purchase{purchaseOf(product(1, "A"))},
		overlaps:  overlaps,
		counts:    []models.Product{product(3, "C")},
	}
	g := NewCollaborative(history, CollaborativeConfig{MinSimilarity: 0.3, MaxNeighbors: 20}, zerolog.Nop())

	if _, err := g.Generate(context.Background(), nlp.EntitySet{}, 42, 10); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(history.countsUserIDs) != 20 {
		t.Errorf("neighbor count = %d, want capped at 20", len(history.countsUserIDs))
	}
}

func TestCollaborativeNoQualifiedNeighbors(t *testing.T) {
	history := &fakeHistory{
		purchases: []models.Purchase{purchaseOf(product(1, "A"))},
		overlaps: []models.UserOverlap{
			{UserID: 10, CommonProducts: 1, TotalProducts: 100},
		},
		counts: []models.Product{product(3, "C")},
	}
	g := NewCollaborative(history, DefaultCollaborativeConfig(), zerolog.Nop())

	products, err := g.Generate(context.Background(), nlp.EntitySet{}, 42, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products with no qualified neighbors, want 0", len(products))
	}
}
