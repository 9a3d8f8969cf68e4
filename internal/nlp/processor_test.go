// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// stubClassifier returns a fixed prediction or error.
type stubClassifier struct {
	pred Prediction
	err  error
}

func (s *stubClassifier) Name() string { return "stub" }

func (s *stubClassifier) Classify(string) (Prediction, error) {
	return s.pred, s.err
}

// panicClassifier panics on every call.
type panicClassifier struct{}

func (panicClassifier) Name() string { return "panic" }

func (panicClassifier) Classify(string) (Prediction, error) {
	panic("model corrupted")
}

func TestProcessorFallbackPolicy(t *testing.T) {
	// The utterance carries a recommend keyword, so the rule engine
	// resolves it to recommend whenever it gets to decide.
	const text = "推荐一款手机"

	tests := []struct {
		name           string
		statistical    Classifier
		wantIntent     Intent
		wantConfidence float64
	}{
		{
			name:           "no statistical classifier hands decision to rules",
			statistical:    nil,
			wantIntent:     IntentRecommend,
			wantConfidence: 0,
		},
		{
			name:           "statistical error falls back to rules",
			statistical:    &stubClassifier{err: errors.New("model unavailable")},
			wantIntent:     IntentRecommend,
			wantConfidence: 0,
		},
		{
			name:           "low-confidence unknown overridden by rules",
			statistical:    &stubClassifier{pred: Prediction{Intent: IntentUnknown, Confidence: 0.4}},
			wantIntent:     IntentRecommend,
			wantConfidence: 0.4,
		},
		{
			name:           "low-confidence known intent stands",
			statistical:    &stubClassifier{pred: Prediction{Intent: IntentAskInfo, Confidence: 0.5}},
			wantIntent:     IntentAskInfo,
			wantConfidence: 0.5,
		},
		{
			name:           "high-confidence unknown stands",
			statistical:    &stubClassifier{pred: Prediction{Intent: IntentUnknown, Confidence: 0.9}},
			wantIntent:     IntentUnknown,
			wantConfidence: 0.9,
		},
		{
			name:           "high-confidence prediction stands",
			statistical:    &stubClassifier{pred: Prediction{Intent: IntentCompare, Confidence: 0.95}},
			wantIntent:     IntentCompare,
			wantConfidence: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcessor(tt.statistical, zerolog.Nop())
			interp := p.Process(text)

			if interp.Intent != tt.wantIntent {
				t.Errorf("intent = %s, want %s", interp.Intent, tt.wantIntent)
			}
			if interp.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", interp.Confidence, tt.wantConfidence)
			}
			if interp.OriginalText != text {
				t.Errorf("original text = %q, want %q", interp.OriginalText, text)
			}
		})
	}
}

func TestProcessorExtractsEntities(t *testing.T) {
	p := NewProcessor(nil, zerolog.Nop())
	interp := p.Process("推荐一款拍照好的华为手机")

	want := EntitySet{Category: "手机", Brand: "华为", Feature: "拍照"}
	if interp.Entities != want {
		t.Errorf("entities = %+v, want %+v", interp.Entities, want)
	}
}

func TestProcessorNeverFails(t *testing.T) {
	p := NewProcessor(panicClassifier{}, zerolog.Nop())
	interp := p.Process("推荐一款手机")

	if interp.Intent != IntentUnknown {
		t.Errorf("intent after panic = %s, want unknown", interp.Intent)
	}
	if interp.Confidence != 0 {
		t.Errorf("confidence after panic = %v, want 0", interp.Confidence)
	}
}
