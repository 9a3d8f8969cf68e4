// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package models

import "time"

// OrderStatus is the lifecycle status of an order.
type OrderStatus string

const (
	// OrderPending awaits payment.
	OrderPending OrderStatus = "pending"
	// OrderPaid has been paid.
	OrderPaid OrderStatus = "paid"
	// OrderShipped has been shipped.
	OrderShipped OrderStatus = "shipped"
	// OrderCompleted has been delivered and completed.
	OrderCompleted OrderStatus = "completed"
	// OrderCancelled was cancelled before completion.
	OrderCancelled OrderStatus = "cancelled"
)

// SettledOrderStatuses are the statuses that count as a real purchase
// signal for recommendations: paid, shipped or completed.
var SettledOrderStatuses = []OrderStatus{OrderPaid, OrderShipped, OrderCompleted}

// Purchase is one purchased product from a user's order history.
type Purchase struct {
	// Product is the purchased product.
	Product Product `json:"product"`

	// Status is the status of the order the purchase belongs to.
	Status OrderStatus `json:"status"`

	// OrderedAt is when the order was placed.
	OrderedAt time.Time `json:"ordered_at"`
}

// UserOverlap summarizes another user's purchase overlap with a reference
// product set. It feeds the collaborative-filtering neighbor selection.
type UserOverlap struct {
	// UserID is the other user.
	UserID int64 `json:"user_id"`

	// CommonProducts is the number of distinct reference products this
	// user also purchased.
	CommonProducts int `json:"common_products"`

	// TotalProducts is this user's total distinct purchased products.
	TotalProducts int `json:"total_products"`
}

// Similarity returns the Jaccard-like similarity score
// |common| / |their total distinct purchases|, 0 when they purchased
// nothing.
func (o UserOverlap) Similarity() float64 {
	if o.TotalProducts == 0 {
		return 0
	}
	return float64(o.CommonProducts) / float64(o.TotalProducts)
}
