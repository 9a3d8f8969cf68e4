// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package models defines the shared domain types: catalog products,
// orders and purchases, conversations with their state machine states, and
// recommendation audit records. The types carry no behavior beyond small
// helpers; storage and business logic live in their own packages.
package models
