// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package storage

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// InsertCategory inserts a category and fills in its ID.
func (s *Store) InsertCategory(ctx context.Context, category *models.Category) error {
	err := s.conn.QueryRowContext(ctx, `INSERT INTO categories (name, parent_id)
		VALUES (?, ?)
		RETURNING id`,
		category.Name, category.ParentID).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("insert category %q: %w", category.Name, err)
	}
	return nil
}

// InsertProduct inserts a product and fills in its ID.
func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	specs := "{}"
	if len(product.Specifications) > 0 {
		encoded, err := json.Marshal(product.Specifications)
		if err != nil {
			return fmt.Errorf("encode specifications of %q: %w", product.Name, err)
		}
		specs = string(encoded)
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = s.now()
	}

	err := s.conn.QueryRowContext(ctx, `INSERT INTO products (name, description, price, stock, category_id, specifications, merchant_id, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, specs, product.MerchantID, product.Image, product.CreatedAt).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert product %q: %w", product.Name, err)
	}
	return nil
}

// OrderLine is one product/quantity pair of an inserted order.
type OrderLine struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// InsertOrder inserts an order with its items and returns the order ID.
func (s *Store) InsertOrder(ctx context.Context, userID int64, status models.OrderStatus, createdAt time.Time, lines []OrderLine) (int64, error) {
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	var orderID int64
	err := s.conn.QueryRowContext(ctx, `INSERT INTO orders (user_id, status, created_at)
		VALUES (?, ?, ?)
		RETURNING id`,
		userID, string(status), createdAt).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order for user %d: %w", userID, err)
	}

	for _, line := range lines {
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		_, err := s.conn.ExecContext(ctx, `INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			orderID, line.ProductID, quantity, line.Price)
		if err != nil {
			return 0, fmt.Errorf("insert order item for product %d: %w", line.ProductID, err)
		}
	}
	return orderID, nil
}

// seedProduct is one row of the demo catalog.
type seedProduct struct {
	name        string
	description string
	price       float64
	stock       int
	category    string
	brand       string
}

var demoCatalog = []seedProduct{
	{"苹果 iPhone 15", "拍照出色，性能强劲，屏幕显示细腻", 5999, 50, "手机", "苹果"},
	{"华为 Mate 60", "拍照领先，续航扎实，做工精良", 6499, 40, "手机", "华为"},
	{"小米 14", "性能旗舰，屏幕优秀，性价比高", 3999, 80, "手机", "小米"},
	{"OPPO Find X7", "拍照细腻，外观时尚，轻薄手感", 4299, 35, "手机", "OPPO"},
	{"vivo X100", "拍照专业，续航持久，屏幕通透", 3899, 45, "手机", "vivo"},
	{"苹果 MacBook Air", "轻薄便携，续航出色，屏幕优秀", 7999, 30, "电脑", "苹果"},
	{"联想 拯救者 Y9000P", "游戏性能强劲，散热出色", 8499, 25, "电脑", "联想"},
	{"戴尔 XPS 13", "做工精良，屏幕细腻，轻薄商务", 9299, 20, "电脑", "戴尔"},
	{"惠普 星 14", "外观清新，轻薄续航均衡", 4699, 40, "电脑", "惠普"},
	{"苹果 iPad Air", "屏幕优秀，性能充足，轻薄便携", 4399, 60, "平板", "苹果"},
	{"华为 MatePad Pro", "屏幕细腻，做工扎实，办公利器", 3699, 45, "平板", "华为"},
	{"小米平板 6", "性价比高，屏幕流畅，游戏娱乐", 1999, 70, "平板", "小米"},
	{"索尼 WH-1000XM5", "音质出色，降噪领先，佩戴舒适", 2499, 55, "耳机", "索尼"},
	{"苹果 AirPods Pro", "音质均衡，降噪优秀，轻巧便携", 1899, 90, "耳机", "苹果"},
	{"华为 FreeBuds Pro", "音质细腻，降噪出色，续航持久", 1199, 75, "耳机", "华为"},
	{"索尼 A7M4", "拍照画质专业，性能全面", 16999, 10, "相机", "索尼"},
	{"苹果 Watch Series 9", "屏幕明亮，做工精致，健康监测", 2999, 65, "智能手表", "苹果"},
	{"华为 Watch GT 4", "续航超长，外观商务，做工扎实", 1488, 80, "智能手表", "华为"},
	{"小米路由器 AX6000", "性能强劲，信号覆盖广", 599, 100, "路由器", "小米"},
	{"索尼 PlayStation 5", "游戏性能顶级，独占阵容丰富", 3899, 30, "游戏机", "索尼"},
	{"小米声学 音箱 Pro", "音质饱满，外观简约", 399, 120, "音箱", "小米"},
	{"华为 智选投影仪", "画面清晰，外观小巧，音质不俗", 2299, 25, "投影仪", "华为"},
}

// Seed populates an empty database with the demo catalog: the fixed
// category vocabulary and a small product set spanning every category and
// brand. It is a no-op when products already exist.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	categoryIDs := make(map[string]int64, len(nlp.Categories))
	for _, name := range nlp.Categories {
		category := models.Category{Name: name}
		if err := s.InsertCategory(ctx, &category); err != nil {
			return err
		}
		categoryIDs[name] = category.ID
	}

	for _, seed := range demoCatalog {
		product := models.Product{
			Name:           seed.name,
			Description:    seed.description,
			Price:          seed.price,
			Stock:          seed.stock,
			CategoryID:     categoryIDs[seed.category],
			Specifications: map[string]string{"brand": seed.brand},
		}
		if err := s.InsertProduct(ctx, &product); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("categories", len(nlp.Categories)).
		Int("products", len(demoCatalog)).
		Msg("seeded demo catalog")
	return nil
}
