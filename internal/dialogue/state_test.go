// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package dialogue

import (
	"testing"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

func TestNextState(t *testing.T) {
	tests := []struct {
		name   string
		state  models.ConversationState
		intent nlp.Intent
		want   models.ConversationState
	}{
		{"init advances on recommend", models.StateInit, nlp.IntentRecommend, models.StateCollecting},
		{"init advances on ask_info", models.StateInit, nlp.IntentAskInfo, models.StateCollecting},
		{"init advances on compare", models.StateInit, nlp.IntentCompare, models.StateCollecting},
		{"init holds on unknown", models.StateInit, nlp.IntentUnknown, models.StateInit},

		{"collecting advances on recommend", models.StateCollecting, nlp.IntentRecommend, models.StateRecommending},
		{"collecting advances on compare", models.StateCollecting, nlp.IntentCompare, models.StateRecommending},
		{"collecting holds on ask_info", models.StateCollecting, nlp.IntentAskInfo, models.StateCollecting},
		{"collecting holds on unknown", models.StateCollecting, nlp.IntentUnknown, models.StateCollecting},

		{"recommending moves to feedback on unknown", models.StateRecommending, nlp.IntentUnknown, models.StateFeedback},
		{"recommending holds on recommend", models.StateRecommending, nlp.IntentRecommend, models.StateRecommending},
		{"recommending holds on ask_info", models.StateRecommending, nlp.IntentAskInfo, models.StateRecommending},

		{"feedback closes on unknown", models.StateFeedback, nlp.IntentUnknown, models.StateClosed},
		{"feedback reopens on recommend", models.StateFeedback, nlp.IntentRecommend, models.StateCollecting},
		{"feedback reopens on ask_info", models.StateFeedback, nlp.IntentAskInfo, models.StateCollecting},

		{"closed is terminal on recommend", models.StateClosed, nlp.IntentRecommend, models.StateClosed},
		{"closed is terminal on unknown", models.StateClosed, nlp.IntentUnknown, models.StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextState(tt.state, tt.intent); got != tt.want {
				t.Errorf("NextState(%s, %s) = %s, want %s", tt.state, tt.intent, got, tt.want)
			}
		})
	}
}

func TestUnknownReply(t *testing.T) {
	tests := []struct {
		name       string
		state      models.ConversationState
		prevIntent nlp.Intent
		want       string
	}{
		{"fresh conversation greets", models.StateInit, "", replyGreeting},
		{"mid-flow asks for clarification", models.StateCollecting, nlp.IntentRecommend, replyClarify},
		{"after recommendations asks for feedback", models.StateRecommending, nlp.IntentRecommend, replyFeedbackPrompt},
		{"prior unknown turn greets again", models.StateCollecting, nlp.IntentUnknown, replyGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unknownReply(tt.state, tt.prevIntent); got != tt.want {
				t.Errorf("unknownReply(%s, %s) = %q, want %q", tt.state, tt.prevIntent, got, tt.want)
			}
		})
	}
}
