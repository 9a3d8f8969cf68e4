// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package storage is the DuckDB persistence layer. It owns the schema and
// implements the catalog, order-history and conversation collaborators the
// recommend and dialogue packages define.
package storage
