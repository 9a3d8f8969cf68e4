// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import "fmt"

// Weights defines the relative contribution of each signal to the fused
// score. Weights are explicit per call rather than module state so weight
// tuning stays testable.
type Weights struct {
	// Rule is the weight of the rule-based signal.
	Rule float64 `json:"rule"`

	// Collaborative is the weight of the collaborative-filtering signal.
	Collaborative float64 `json:"collaborative"`

	// Content is the weight of the content-based signal.
	Content float64 `json:"content"`
}

// DefaultWeights returns the three-way fusion weights for authenticated
// users.
func DefaultWeights() Weights {
	return Weights{Rule: 0.3, Collaborative: 0.4, Content: 0.3}
}

// AnonymousWeights returns the two-way fusion weights for anonymous users,
// who have no order history to feed the collaborative signal.
func AnonymousWeights() Weights {
	return Weights{Rule: 0.6, Collaborative: 0, Content: 0.4}
}

// Validate checks that the weights are non-negative and not all zero.
func (w Weights) Validate() error {
	if w.Rule < 0 || w.Collaborative < 0 || w.Content < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	if w.Rule+w.Collaborative+w.Content == 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	return nil
}
