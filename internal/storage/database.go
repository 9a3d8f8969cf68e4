// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
)

// Config tunes the DuckDB connection.
type Config struct {
	// Path is the database file path; ":memory:" gives an ephemeral
	// in-process database.
	Path string `koanf:"path" validate:"required"`

	// MaxMemory caps DuckDB's memory use (e.g. "512MB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB worker thread count; 0 uses all CPUs.
	Threads int `koanf:"threads" validate:"gte=0"`
}

// Store wraps the DuckDB connection and provides the data access methods.
type Store struct {
	conn   *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// Open opens (or creates) the database and initializes the schema.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}

	if dir := filepath.Dir(cfg.Path); cfg.Path != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	// Disable extension auto-install/auto-load: nothing in the schema
	// needs extensions and autoloading can hang without network access.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// DuckDB is embedded and single-process; a small pool is enough and
	// keeps write contention down.
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(0)

	store := &Store{
		conn:   conn,
		logger: logger.With().Str("component", "storage").Logger(),
		now:    time.Now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.initSchema(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	store.logger.Info().Str("path", cfg.Path).Int("threads", threads).Msg("database opened")
	return store, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Conn returns the underlying SQL connection for callers that need raw
// access, such as health checks.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// initSchema creates the sequences, tables and indexes. Every statement is
// idempotent so reopening an existing database is a no-op.
func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_category_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_product_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_order_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_order_item_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_conversation_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_message_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_recommendation_id START 1`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_category_id'),
			name TEXT NOT NULL UNIQUE,
			parent_id BIGINT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_product_id'),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			category_id BIGINT NOT NULL,
			specifications TEXT NOT NULL DEFAULT '{}',
			merchant_id BIGINT NOT NULL DEFAULT 0,
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_order_id'),
			user_id BIGINT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_order_item_id'),
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			price DOUBLE NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_conversation_id'),
			user_id BIGINT NOT NULL,
			state TEXT NOT NULL,
			context TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_message_id'),
			conversation_id BIGINT NOT NULL,
			kind TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_recommendation_id'),
			conversation_id BIGINT NOT NULL,
			algorithm TEXT NOT NULL,
			product_ids TEXT NOT NULL DEFAULT '[]',
			feedback TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items (product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations (user_id, state)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages (conversation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_conversation ON recommendations (conversation_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute %q: %w", stmt[:min(len(stmt), 40)], err)
		}
	}
	return nil
}

// settledStatusList renders the settled-order status set as a SQL IN list.
// The statuses are fixed constants, never user input.
const settledStatusList = `('paid', 'shipped', 'completed')`

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}
