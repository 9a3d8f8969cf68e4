// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// EntitySet holds the entities extracted from one utterance. A zero value
// for a field means the field is unconstrained.
type EntitySet struct {
	// Category is the matched product category term.
	Category string `json:"category,omitempty"`

	// Brand is the matched brand term.
	Brand string `json:"brand,omitempty"`

	// Feature is the matched product feature term.
	Feature string `json:"feature,omitempty"`

	// PriceRange is the matched named price band (e.g. "1000-2000").
	PriceRange string `json:"price_range,omitempty"`

	// Price is the numeric price extracted from the text, 0 when absent.
	Price int `json:"price,omitempty"`
}

// IsZero reports whether no entity was extracted.
func (e EntitySet) IsZero() bool {
	return e == EntitySet{}
}

// Merge returns a copy of e with every non-zero field of newer overwriting
// the corresponding field. Zero fields of newer never erase stored values,
// so conversation context accumulates monotonically with last-write-wins
// per field.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (e EntitySet) Merge(newer EntitySet) EntitySet {
	merged := e
	if newer.Category != "" {
		merged.Category = newer.Category
	}
	if newer.Brand != "" {
		merged.Brand = newer.Brand
	}
	if newer.Feature != "" {
		merged.Feature = newer.Feature
	}
	if newer.PriceRange != "" {
		merged.PriceRange = newer.PriceRange
	}
	if newer.Price != 0 {
		merged.Price = newer.Price
	}
	return merged
}

// pricePatterns are tried in order; the first match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)元`),
	regexp.MustCompile(`(\d+)块`),
	regexp.MustCompile(`(\d+)以下`),
	regexp.MustCompile(`(\d+)左右`),
}

// Extract returns the entity set for text. It is a pure function:
// deterministic, side-effect free, and it always succeeds (absent fields
// stay zero). Matching is first-match-wins per field in declared vocabulary
// order; overlaps between fields are not resolved.
func Extract(text string) EntitySet {
	var entities EntitySet

	entities.Category = firstContained(text, Categories)
	entities.Brand = firstContained(text, Brands)
	entities.Feature = firstContained(text, Features)
	entities.PriceRange = firstContained(text, PriceRanges)

	for _, pattern := range pricePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if price, err := strconv.Atoi(m[1]); err == nil {
				entities.Price = price
			}
			break
		}
	}

	return entities
}

// firstContained returns the first vocabulary term contained in text,
// or the empty string when none matches.
func firstContained(text string, vocabulary []string) string {
	for _, term := range vocabulary {
		if strings.Contains(text, term) {
			return term
		}
	}
	return ""
}
