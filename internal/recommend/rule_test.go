// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

func TestRuleBasedFullConjunction(t *testing.T) {
	var filters []models.ProductFilter
	catalog := &fakeCatalog{find: func(filter models.ProductFilter) ([]models.Product, error) {
		filters = append(filters, filter)
		return []models.Product{product(1, "华为 Mate 60")}, nil
	}}
	g := NewRuleBased(catalog, zerolog.Nop())

	products, err := g.Generate(context.Background(),
		nlp.EntitySet{Category: "手机", Brand: "华为", Price: 2000}, 0, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(products) != 1 || products[0].ID != 1 {
		t.Errorf("products = %+v, want [1]", products)
	}
	if len(filters) != 1 {
		t.Fatalf("got %d catalog queries, want 1 when the conjunction matches", len(filters))
	}
	f := filters[0]
	if f.Category != "手机" || f.Brand != "华为" || !f.InStock || f.Limit != 10 {
		t.Errorf("filter = %+v, want the full in-stock conjunction", f)
	}
	if f.MinPrice != 1600 || f.MaxPrice != 2400 {
		t.Errorf("price bounds = %v..%v, want the 2000 band 1600..2400", f.MinPrice, f.MaxPrice)
	}
}

func TestRuleBasedCategoryOnlyRetry(t *testing.T) {
	var filters []models.ProductFilter
	catalog := &fakeCatalog{find: func(filter models.ProductFilter) ([]models.Product, error) {
		filters = append(filters, filter)
		if filter.Brand != "" {
			// Nothing carries the requested brand.
			return nil, nil
		}
		return []models.Product{product(2, "小米 14")}, nil
	}}
	g := NewRuleBased(catalog, zerolog.Nop())

	products, err := g.Generate(context.Background(),
		nlp.EntitySet{Category: "手机", Brand: "三星", Feature: "拍照"}, 0, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(filters) != 2 {
		t.Fatalf("got %d catalog queries, want conjunction then category-only retry", len(filters))
	}
	retry := filters[1]
	if retry.Category != "手机" || !retry.InStock || retry.Limit != 10 {
		t.Errorf("retry filter = %+v, want category-only in-stock", retry)
	}
	if retry.Brand != "" || retry.Feature != "" || retry.MinPrice != 0 || retry.MaxPrice != 0 {
		t.Errorf("retry filter = %+v, want brand, feature and price dropped", retry)
	}
	if len(products) != 1 || products[0].ID != 2 {
		t.Errorf("products = %+v, want the category-only result", products)
	}
}

func TestRuleBasedNoRetryWithoutCategory(t *testing.T) {
	queries := 0
	catalog := &fakeCatalog{find: func(models.ProductFilter) ([]models.Product, error) {
		queries++
		return nil, nil
	}}
	g := NewRuleBased(catalog, zerolog.Nop())

	products, err := g.Generate(context.Background(), nlp.EntitySet{Brand: "三星"}, 0, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if queries != 1 {
		t.Errorf("got %d catalog queries, want no retry without a category", queries)
	}
	if len(products) != 0 {
		t.Errorf("products = %+v, want empty", products)
	}
}

func TestRuleBasedQueryError(t *testing.T) {
	catalog := &fakeCatalog{find: func(models.ProductFilter) ([]models.Product, error) {
		return nil, errors.New("db down")
	}}
	g := NewRuleBased(catalog, zerolog.Nop())

	if _, err := g.Generate(context.Background(), nlp.EntitySet{Category: "手机"}, 0, 10); err == nil {
		t.Error("expected the catalog error to propagate")
	}
}
