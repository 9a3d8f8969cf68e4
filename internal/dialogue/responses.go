// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package dialogue

import (
	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

// Canned replies for turns the recommendation engine is not dispatched on.
const (
	// replyGreeting welcomes a user whose utterance carried no
	// recognizable intent and who has no prior turn to fall back on.
	replyGreeting = "您好！我是商品推荐助手，可以帮您推荐商品、查询商品信息或比较不同商品。请问您需要什么帮助？"

	// replyClarify apologizes when the user had a recognized intent on a
	// previous turn but the current utterance could not be understood.
	replyClarify = "抱歉，我没有理解您的意思。您可以告诉我您想了解什么商品，或者需要什么样的推荐？"

	// replyFeedbackPrompt asks for a reaction right after recommendations
	// were shown.
	replyFeedbackPrompt = "您对推荐的商品感觉如何？需要了解更多信息还是有其他需求？"

	// replyTurnFailed is the degraded reply when processing a turn
	// panicked; the conversation state is left untouched.
	replyTurnFailed = "抱歉，系统暂时出现了问题，请稍后再试。"
)

// unknownReply selects the canned reply for an unrecognized utterance.
// state is the conversation state before the turn's transition and
// prevIntent the intent of the previous turn, so a user who just saw
// recommendations is asked for feedback and a user who was mid-flow gets
// a clarification prompt instead of being re-greeted.
func unknownReply(state models.ConversationState, prevIntent nlp.Intent) string {
	switch {
	case state == models.StateRecommending:
		return replyFeedbackPrompt
	case prevIntent.Actionable():
		return replyClarify
	default:
		return replyGreeting
	}
}
