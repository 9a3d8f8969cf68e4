// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yourhu/CRS-System/internal/models"
)

// PurchasesOf returns the user's purchases from settled orders, newest
// first.
func (s *Store) PurchasesOf(ctx context.Context, userID int64) ([]models.Purchase, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+productColumns+`, o.status, o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE o.user_id = ? AND o.status IN `+settledStatusList+`
		ORDER BY o.created_at DESC, oi.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query purchases of user %d: %w", userID, err)
	}
	defer closeRows(rows)

	var purchases []models.Purchase
	for rows.Next() {
		var (
			p         models.Product
			specs     string
			status    string
			orderedAt time.Time
		)
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.CategoryID, &p.CategoryName, &specs, &p.MerchantID, &p.Image, &p.CreatedAt,
			&status, &orderedAt)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if specs != "" && specs != "{}" {
			if err := decodeSpecs(specs, &p); err != nil {
				return nil, err
			}
		}
		purchases = append(purchases, models.Purchase{
			Product:   p,
			Status:    models.OrderStatus(status),
			OrderedAt: orderedAt,
		})
	}
	return purchases, rows.Err()
}

// OverlappingUsers returns, for every other user who purchased any of the
// given products in a settled order, how many of them they bought and how
// many distinct products they bought overall.
func (s *Store) OverlappingUsers(ctx context.Context, userID int64, productIDs []int64) ([]models.UserOverlap, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(productIDs)), ", ")
	args := make([]any, 0, len(productIDs)+1)
	for _, id := range productIDs {
		args = append(args, id)
	}
	args = append(args, userID)

	rows, err := s.conn.QueryContext(ctx, `SELECT o.user_id,
			COUNT(DISTINCT oi.product_id) FILTER (WHERE oi.product_id IN (`+placeholders+`)) AS common_products,
			COUNT(DISTINCT oi.product_id) AS total_products
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id <> ? AND o.status IN `+settledStatusList+`
		GROUP BY o.user_id
		HAVING common_products > 0
		ORDER BY o.user_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query overlapping users: %w", err)
	}
	defer closeRows(rows)

	var overlaps []models.UserOverlap
	for rows.Next() {
		var o models.UserOverlap
		if err := rows.Scan(&o.UserID, &o.CommonProducts, &o.TotalProducts); err != nil {
			return nil, fmt.Errorf("scan overlap: %w", err)
		}
		overlaps = append(overlaps, o)
	}
	return overlaps, rows.Err()
}

// PurchaseCounts returns in-stock products purchased by the given users in
// settled orders, narrowed by the filter's constrained fields, ordered by
// descending units purchased and then recency of purchase.
func (s *Store) PurchaseCounts(ctx context.Context, userIDs []int64, filter models.ProductFilter, limit int) ([]models.Product, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(userIDs)), ", ")
	args := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		args = append(args, id)
	}

	conditions := []string{
		"o.user_id IN (" + placeholders + ")",
		"o.status IN " + settledStatusList,
		"p.stock > 0",
	}
	filterConds, filterArgs := filterConditions(filter)
	conditions = append(conditions, filterConds...)
	args = append(args, filterArgs...)

	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + `
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY ` + productColumns + `
		ORDER BY SUM(oi.quantity) DESC, MAX(o.created_at) DESC, p.id DESC`)
	if limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query purchase counts: %w", err)
	}
	defer closeRows(rows)

	return scanProducts(rows)
}

// PopularProducts returns in-stock products ordered by units sold in
// settled orders since the given time, then by listing recency, narrowed by
// the filter's constrained fields. Products without any sale in the window
// still rank, with zero units.
func (s *Store) PopularProducts(ctx context.Context, filter models.ProductFilter, since time.Time, limit int) ([]models.Product, error) {
	conditions := []string{"p.stock > 0"}
	args := []any{since}

	filterConds, filterArgs := filterConditions(filter)
	conditions = append(conditions, filterConds...)
	args = append(args, filterArgs...)

	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN (
			SELECT oi.product_id, SUM(oi.quantity) AS units
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status IN ` + settledStatusList + ` AND o.created_at >= ?
			GROUP BY oi.product_id
		) sales ON sales.product_id = p.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY COALESCE(sales.units, 0) DESC, p.created_at DESC, p.id DESC`)
	if limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query popular products: %w", err)
	}
	defer closeRows(rows)

	return scanProducts(rows)
}
