// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/yourhu/CRS-System/internal/models"
)

// productColumns is the select list every product query shares; scanProduct
// scans exactly these columns in order.
const productColumns = `p.id, p.name, p.description, p.price, p.stock,
	p.category_id, c.name, p.specifications, p.merchant_id, p.image, p.created_at`

// Find returns products matching the filter, newest first.
func (s *Store) Find(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id`)

	conditions, args := filterConditions(filter)
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY p.created_at DESC, p.id DESC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.conn.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer closeRows(rows)

	return scanProducts(rows)
}

// GetProduct returns one product by ID, or nil when it does not exist.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = ?`, id)

	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}
	return &product, nil
}

// Categories returns all categories ordered by ID.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, parent_id FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer closeRows(rows)

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// filterConditions renders the filter's constrained fields as SQL
// conditions over the aliases p (products) and c (categories).
func filterConditions(filter models.ProductFilter) ([]string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.Category != "" {
		conditions = append(conditions, "c.name LIKE ?")
		args = append(args, contains(filter.Category))
	}
	if filter.CategoryID != 0 {
		conditions = append(conditions, "p.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if len(filter.CategoryIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.CategoryIDs)), ", ")
		conditions = append(conditions, "p.category_id IN ("+placeholders+")")
		for _, id := range filter.CategoryIDs {
			args = append(args, id)
		}
	}
	if filter.Brand != "" {
		conditions = append(conditions, "(p.name LIKE ? OR p.specifications LIKE ?)")
		args = append(args, contains(filter.Brand), contains(filter.Brand))
	}
	if filter.ExcludeBrand != "" {
		conditions = append(conditions, "NOT (p.name LIKE ? OR p.specifications LIKE ?)")
		args = append(args, contains(filter.ExcludeBrand), contains(filter.ExcludeBrand))
	}
	if filter.Feature != "" {
		conditions = append(conditions, "(p.description LIKE ? OR p.specifications LIKE ?)")
		args = append(args, contains(filter.Feature), contains(filter.Feature))
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, "p.price >= ?")
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		if filter.MaxPriceExclusive {
			conditions = append(conditions, "p.price < ?")
		} else {
			conditions = append(conditions, "p.price <= ?")
		}
		args = append(args, filter.MaxPrice)
	}
	if filter.InStock {
		conditions = append(conditions, "p.stock > 0")
	}
	if filter.ExcludeID != 0 {
		conditions = append(conditions, "p.id <> ?")
		args = append(args, filter.ExcludeID)
	}

	return conditions, args
}

func contains(term string) string {
	return "%" + term + "%"
}

// rowScanner abstracts *sql.Row and *sql.Rows for product scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p     models.Product
		specs string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &specs, &p.MerchantID, &p.Image, &p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	if specs != "" && specs != "{}" {
		if err := decodeSpecs(specs, &p); err != nil {
			return models.Product{}, err
		}
	}
	return p, nil
}

func decodeSpecs(specs string, p *models.Product) error {
	if err := json.Unmarshal([]byte(specs), &p.Specifications); err != nil {
		return fmt.Errorf("decode specifications of product %d: %w", p.ID, err)
	}
	return nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func closeRows(rows *sql.Rows) {
	_ = rows.Close()
}
