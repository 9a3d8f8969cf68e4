// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package recommend produces ranked product lists by fusing three
// independent candidate generators with a tunable weighted blend:
//
//   - RuleBased: conjunctive entity filter against the catalog, with a
//     category-only degradation when the full conjunction over-constrains.
//   - Collaborative: purchases of similar users (Jaccard-like overlap on
//     order history), ranked by purchase count across neighbors.
//   - ContentBased: same-category similarity search seeded from the user's
//     recent purchases, falling back to rule-filtered seeds for anonymous
//     or cold-start users.
//
// The Ranker converts each generator's ordered list into positional scores
// and combines them with per-signal weights: three-way for authenticated
// users, two-way (rule + content) for anonymous ones. A Popularity
// generator pads short result lists from a trailing 30-day sales window.
//
// Engine is the facade the dialogue manager talks to: it dispatches by
// intent (recommend / ask_info / compare), assembles the reply message and
// the algorithm label, and guarantees a degraded-but-valid result on any
// internal failure.
//
// Storage is abstracted behind the Catalog and InteractionHistory
// interfaces so the package has no dependency on the database layer.
package recommend
