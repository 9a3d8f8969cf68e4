// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package api provides the HTTP surface: the chat turn endpoint, catalog
// and conversation reads, recommendation feedback, health and Prometheus
// metrics, routed with chi.
package api
