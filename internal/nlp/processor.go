// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/metrics"
)

// fallbackConfidenceThreshold is the confidence below which a statistical
// "unknown" prediction is overridden by the rule engine.
const fallbackConfidenceThreshold = 0.7

// Interpretation is the structured result of processing one utterance.
// It is created once per turn and never mutated afterwards.
type Interpretation struct {
	// Intent is the final intent after the fallback policy.
	Intent Intent `json:"intent"`

	// Confidence is the statistical confidence in [0, 1]; 0 when the
	// rule engine decided outright.
	Confidence float64 `json:"confidence"`

	// Entities is the extracted entity set.
	Entities EntitySet `json:"entities"`

	// OriginalText is the raw utterance.
	OriginalText string `json:"original_text"`
}

// Processor orchestrates the intent classifier and the entity extractor.
// The statistical classifier is optional; its absence is a normal state,
// not an error path.
type Processor struct {
	statistical Classifier
	rules       RuleClassifier
	logger      zerolog.Logger
}

// NewProcessor creates a processor. statistical may be nil when no model
// artifact is available; the rule engine then decides every turn.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewProcessor(statistical Classifier, logger zerolog.Logger) *Processor {
	return &Processor{
		statistical: statistical,
		logger:      logger.With().Str("component", "nlp").Logger(),
	}
}

// Process turns text into an Interpretation. It never fails: any internal
// error degrades to intent unknown with confidence 0 plus best-effort
// entities.
func (p *Processor) Process(text string) (interp Interpretation) {
	interp = Interpretation{
		Intent:       IntentUnknown,
		OriginalText: text,
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Str("text", text).
				Str("panic", fmt.Sprint(r)).
				Msg("nlp processing panicked, degrading to unknown intent")
			interp.Intent = IntentUnknown
			interp.Confidence = 0
		}
	}()

	interp.Entities = Extract(text)
	interp.Intent, interp.Confidence = p.classify(text)

	p.logger.Debug().
		Str("intent", string(interp.Intent)).
		Float64("confidence", interp.Confidence).
		Msg("utterance processed")

	return interp
}

// classify applies the confidence-gated fallback policy: the statistical
// strategy runs first when available; its result is overridden by the rule
// engine only when confidence is below the threshold AND the predicted
// intent is unknown. A missing or failing statistical classifier hands the
// decision to the rule engine outright.
func (p *Processor) classify(text string) (Intent, float64) {
	if p.statistical == nil {
		pred, _ := p.rules.Classify(text)
		p.logger.Debug().
			Str("intent", string(pred.Intent)).
			Msg("statistical classifier unavailable, rule engine decided")
		return pred.Intent, 0
	}

	pred, err := p.statistical.Classify(text)
	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("classifier", p.statistical.Name()).
			Msg("statistical classification failed, falling back to rules")
		metrics.ClassifierFallbacks.Inc()
		rulePred, _ := p.rules.Classify(text)
		return rulePred.Intent, 0
	}

	if pred.Confidence < fallbackConfidenceThreshold && pred.Intent == IntentUnknown {
		metrics.ClassifierFallbacks.Inc()
		rulePred, _ := p.rules.Classify(text)
		p.logger.Debug().
			Float64("confidence", pred.Confidence).
			Str("rule_intent", string(rulePred.Intent)).
			Msg("low-confidence unknown, rule engine overrides")
		return rulePred.Intent, pred.Confidence
	}

	return pred.Intent, pred.Confidence
}
