// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package dialogue

import (
	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// NextState advances the dialogue state machine. The transition table is
// sparse on purpose: any state/intent pair it does not name keeps the
// current state, and closed is terminal.
//
//	init         --known intent-->        collecting
//	collecting   --recommend/compare-->   recommending
//	recommending --unknown-->             feedback
//	feedback     --unknown-->             closed
//	feedback     --any known intent-->    collecting
func NextState(state models.ConversationState, intent nlp.Intent) models.ConversationState {
	switch state {
	case models.StateInit:
		if intent.Actionable() {
			return models.StateCollecting
		}
	case models.StateCollecting:
		if intent == nlp.IntentRecommend || intent == nlp.IntentCompare {
			return models.StateRecommending
		}
	case models.StateRecommending:
		if !intent.Actionable() {
			return models.StateFeedback
		}
	case models.StateFeedback:
		if !intent.Actionable() {
			return models.StateClosed
		}
		return models.StateCollecting
	case models.StateClosed:
	}
	return state
}
