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

// fakeCatalog serves canned products through a pluggable find function.
type fakeCatalog struct {
	find func(models.ProductFilter) ([]models.Product, error)
}

func (f *fakeCatalog) Find(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if f.find == nil {
		return nil, nil
	}
	return f.find(filter)
}

// fakeHistory serves canned order history.
type fakeHistory struct {
	purchases      []models.Purchase
	purchasesErr   error
	overlaps       []models.UserOverlap
	overlapsErr    error
	counts         []models.Product
	countsErr      error
	popular        []models.Product
	popularErr     error
	countsUserIDs  []int64
	overlapsCalled bool
}

func (f *fakeHistory) PurchasesOf(context.Context, int64) ([]models.Purchase, error) {
	return f.purchases, f.purchasesErr
}

func (f *fakeHistory) OverlappingUsers(_ context.Context, _ int64, _ []int64) ([]models.UserOverlap, error) {
	f.overlapsCalled = true
	return f.overlaps, f.overlapsErr
}

func (f *fakeHistory) PurchaseCounts(_ context.Context, userIDs []int64, _ models.ProductFilter, _ int) ([]models.Product, error) {
	f.countsUserIDs = userIDs
	return f.counts, f.countsErr
}

func (f *fakeHistory) PopularProducts(context.Context, models.ProductFilter, time.Time, int) ([]models.Product, error) {
	return f.popular, f.popularErr
}

// fakeGenerator yields a fixed candidate list or error.
type fakeGenerator struct {
	name     string
	products []models.Product
	err      error
}

func (f *fakeGenerator) Name() string { return f.name }

func (f *fakeGenerator) Generate(context.Context, nlp.EntitySet, int64, int) ([]models.Product, error) {
	return f.products, f.err
}

func purchaseOf(p models.Product) models.Purchase {
	return models.Purchase{Product: p, Status: models.OrderPaid, OrderedAt: time.Now()}
}
