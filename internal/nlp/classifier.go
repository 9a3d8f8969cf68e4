// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

import "strings"

// Prediction is an intent classification result.
type Prediction struct {
	// Intent is the predicted intent.
	Intent Intent `json:"intent"`

	// Confidence is the classifier's confidence in [0, 1].
	Confidence float64 `json:"confidence"`
}

// Classifier predicts the intent of an utterance. Implementations must be
// safe for concurrent use; classification happens on every turn.
type Classifier interface {
	// Name returns the classifier identifier (e.g. "rules", "naive_bayes").
	Name() string

	// Classify returns the predicted intent and confidence for text.
	Classify(text string) (Prediction, error)
}

// RuleClassifier is a deterministic keyword-rule intent engine. It serves
// both as the fallback when the statistical model is unavailable and as the
// arbiter for low-confidence "unknown" predictions.
//
// Precedence: recommend keywords win outright. Info keywords come next, but
// flip to compare when compare keywords are also present. Compare keywords
// alone still yield compare. Anything else is unknown. The two compare
// paths are deliberately kept separate; they are not symmetric.
type RuleClassifier struct{}

// Name returns the classifier identifier.
func (RuleClassifier) Name() string { return "rules" }

// Classify applies the keyword rules. Confidence is reported as 1.0 by
// convention since the rules are deterministic. The returned error is
// always nil.
func (RuleClassifier) Classify(text string) (Prediction, error) {
	return Prediction{Intent: ruleIntent(text), Confidence: 1.0}, nil
}

// ruleIntent applies the ordered keyword-set membership tests.
func ruleIntent(text string) Intent {
	switch {
	case containsAny(text, recommendKeywords):
		return IntentRecommend
	case containsAny(text, infoKeywords):
		if containsAny(text, compareKeywords) {
			return IntentCompare
		}
		return IntentAskInfo
	case containsAny(text, compareKeywords):
		return IntentCompare
	default:
		return IntentUnknown
	}
}

// containsAny reports whether text contains any of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
