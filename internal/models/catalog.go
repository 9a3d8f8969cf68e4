// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package models

import "time"

// Category is a product category.
type Category struct {
	// ID is the category identifier.
	ID int64 `json:"id"`

	// Name is the category display name.
	Name string `json:"name"`

	// ParentID is the parent category, 0 for top-level categories.
	ParentID int64 `json:"parent_id,omitempty"`
}

// Product is a catalog product.
type Product struct {
	// ID is the product identifier.
	ID int64 `json:"id"`

	// Name is the product display name.
	Name string `json:"name"`

	// Description is the free-text product description.
	Description string `json:"description"`

	// Price is the unit price.
	Price float64 `json:"price"`

	// Stock is the units in stock.
	Stock int `json:"stock"`

	// CategoryID references the product's category.
	CategoryID int64 `json:"category_id"`

	// CategoryName is the denormalized category name.
	CategoryName string `json:"category"`

	// Specifications is an arbitrary key-value spec mapping
	// (e.g. brand, weight, screen size).
	Specifications map[string]string `json:"specifications,omitempty"`

	// MerchantID references the selling merchant account.
	MerchantID int64 `json:"merchant_id,omitempty"`

	// Image is the product image reference, empty when none.
	Image string `json:"image,omitempty"`

	// CreatedAt is when the product was listed.
	CreatedAt time.Time `json:"created_at"`
}

// Brand returns the product's brand from its specifications, empty when
// not specified.
func (p *Product) Brand() string {
	return p.Specifications["brand"]
}

// ProductFilter describes a conjunctive catalog query. Zero-valued fields
// are unconstrained. Results are always ordered newest-first.
type ProductFilter struct {
	// Category matches products whose category name contains this
	// substring, case-insensitive.
	Category string

	// CategoryID matches products in exactly this category.
	CategoryID int64

	// CategoryIDs matches products in any of these categories.
	CategoryIDs []int64

	// Brand matches products whose name or specification text contains
	// this substring, case-insensitive.
	Brand string

	// ExcludeBrand excludes products whose name or specification text
	// contains this substring, case-insensitive.
	ExcludeBrand string

	// Feature matches products whose description or specification text
	// contains this substring, case-insensitive.
	Feature string

	// MinPrice is the inclusive lower price bound, 0 for unbounded.
	MinPrice float64

	// MaxPrice is the upper price bound, 0 for unbounded.
	MaxPrice float64

	// MaxPriceExclusive makes MaxPrice an exclusive bound
	// (the "under 1000" band is price < 1000, the others are inclusive).
	MaxPriceExclusive bool

	// InStock restricts to products with stock > 0.
	InStock bool

	// ExcludeID excludes a single product, 0 for none.
	ExcludeID int64

	// Limit caps the number of results, 0 for no cap.
	Limit int
}
