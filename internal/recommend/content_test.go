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

func TestContentBasedSeedsFromPurchases(t *testing.T) {
	seed := models.Product{ID: 1, Name: "seed", CategoryID: 7}
	history := &fakeHistory{purchases: []models.Purchase{purchaseOf(seed)}}

	var similarFilters []models.ProductFilter
	catalog := &fakeCatalog{find: func(filter models.ProductFilter) ([]models.Product, error) {
		similarFilters = append(similarFilters, filter)
		return []models.Product{{ID: 2, CategoryID: 7}}, nil
	}}

	g := NewContentBased(catalog, history, zerolog.Nop())
	products, err := g.Generate(context.Background(), nlp.EntitySet{}, 42, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(products) != 1 || products[0].ID != 2 {
		t.Errorf("products = %+v, want [2]", products)
	}
	if len(similarFilters) != 1 {
		t.Fatalf("got %d catalog queries, want 1 similarity query", len(similarFilters))
	}
	f := similarFilters[0]
	if f.CategoryID != 7 || f.ExcludeID != 1 || !f.InStock {
		t.Errorf("similarity filter = %+v, want same-category in-stock excluding seed", f)
	}
	if f.Limit != 5 {
		t.Errorf("per-seed limit = %d, want limit/2 = 5", f.Limit)
	}
}

func TestContentBasedSeedCap(t *testing.T) {
	purchases := make([]models.Purchase, 8)
	for i := range purchases {
		purchases[i] = purchaseOf(models.Product{ID: int64(i + 1), CategoryID: 7})
	}
	history := &fakeHistory{purchases: purchases}

	queries := 0
	catalog := &fakeCatalog{find: func(models.ProductFilter) ([]models.Product, error) {
		queries++
		return nil, nil
	}}

	g := NewContentBased(catalog, history, zerolog.Nop())
	if _, err := g.Generate(context.Background(), nlp.EntitySet{}, 42, 10); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if queries != 5 {
		t.Errorf("similarity queries = %d, want seeds capped at 5", queries)
	}
}

func TestContentBasedAnonymousFallsBackToFilterSeeds(t *testing.T) {
	var filters []models.ProductFilter
	catalog := &fakeCatalog{find: func(filter models.ProductFilter) ([]models.Product, error) {
		filters = append(filters, filter)
		if len(filters) == 1 {
			// Seed lookup.
			return []models.Product{{ID: 1, CategoryID: 7}}, nil
		}
		return []models.Product{{ID: 2, CategoryID: 7}}, nil
	}}

	g := NewContentBased(catalog, &fakeHistory{}, zerolog.Nop())
	products, err := g.Generate(context.Background(), nlp.EntitySet{Category: "手机"}, 0, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(filters) < 1 || filters[0].Limit != 3 {
		t.Errorf("seed lookup limit = %+v, want 3", filters)
	}
	if len(products) != 1 || products[0].ID != 2 {
		t.Errorf("products = %+v, want [2]", products)
	}
}

func TestContentBasedNoSeeds(t *testing.T) {
	g := NewContentBased(&fakeCatalog{}, &fakeHistory{}, zerolog.Nop())

	products, err := g.Generate(context.Background(), nlp.EntitySet{}, 0, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products without seeds, want 0", len(products))
	}
}

func TestDedupeProducts(t *testing.T) {
	products := []models.Product{
		product(1, "A"), product(2, "B"), product(1, "A"), product(3, "C"), product(2, "B"),
	}

	got := dedupeProducts(products, 0)
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d products, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %d, want %d (first-seen order)", i, got[i].ID, id)
		}
	}

	if truncated := dedupeProducts(products, 2); len(truncated) != 2 {
		t.Errorf("got %d products with limit 2, want 2", len(truncated))
	}
}
