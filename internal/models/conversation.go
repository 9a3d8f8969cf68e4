// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package models

import (
	"time"

	"github.com/yourhu/CRS-System/internal/nlp"
)

// ConversationState is a state of the dialogue state machine.
type ConversationState string

const (
	// StateInit is a freshly created conversation.
	StateInit ConversationState = "init"
	// StateCollecting gathers constraints from the user.
	StateCollecting ConversationState = "collecting"
	// StateRecommending has produced recommendations.
	StateRecommending ConversationState = "recommending"
	// StateFeedback awaits the user's reaction to recommendations.
	StateFeedback ConversationState = "feedback"
	// StateClosed is terminal; closed conversations are never reopened.
	StateClosed ConversationState = "closed"
)

// Context is the conversation-scoped memory carried across turns.
type Context struct {
	// Entities is the merged entity dictionary; each turn's extracted
	// entities overwrite stored ones per field when non-empty.
	Entities nlp.EntitySet `json:"entities"`

	// LastIntent is the intent of the most recent processed turn.
	LastIntent nlp.Intent `json:"last_intent,omitempty"`

	// LastMessageTime is when the most recent turn was processed.
	LastMessageTime time.Time `json:"last_message_time,omitempty"`
}

// Conversation is one user's dialogue session. A user has at most one
// active (non-closed) conversation; conversations are never deleted, only
// closed.
type Conversation struct {
	// ID is the conversation identifier.
	ID int64 `json:"id"`

	// UserID is the owning user.
	UserID int64 `json:"user_id"`

	// State is the current dialogue state.
	State ConversationState `json:"state"`

	// Context is the conversation-scoped memory.
	Context Context `json:"context"`

	// CreatedAt is when the conversation started.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the conversation was last touched.
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageKind classifies a logged chat message.
type MessageKind string

const (
	// MessageUser is a user utterance.
	MessageUser MessageKind = "user"
	// MessageSystem is an assistant text reply.
	MessageSystem MessageKind = "system"
	// MessageProduct is an assistant reply carrying product cards.
	MessageProduct MessageKind = "product"
)

// Message is one logged chat message.
type Message struct {
	// ID is the message identifier.
	ID int64 `json:"id"`

	// ConversationID is the conversation the message belongs to.
	ConversationID int64 `json:"conversation_id"`

	// Kind classifies the message.
	Kind MessageKind `json:"kind"`

	// Content is the message text.
	Content string `json:"content"`

	// CreatedAt is when the message was logged.
	CreatedAt time.Time `json:"created_at"`
}

// Recommendation is an append-only audit record of one produced
// recommendation set.
type Recommendation struct {
	// ID is the record identifier.
	ID int64 `json:"id"`

	// ConversationID is the conversation the recommendation was made in.
	ConversationID int64 `json:"conversation_id"`

	// Algorithm labels the strategy that produced the product set
	// (rule_based, hybrid, content_rule_hybrid, info_query, comparison,
	// error).
	Algorithm string `json:"algorithm"`

	// ProductIDs are the recommended products, in ranked order.
	ProductIDs []int64 `json:"product_ids"`

	// Feedback is the user's later reaction label, empty until given.
	Feedback string `json:"feedback,omitempty"`

	// CreatedAt is when the recommendation was produced.
	CreatedAt time.Time `json:"created_at"`
}
