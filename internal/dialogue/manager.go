// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
	"github.com/yourhu/CRS-System/internal/recommend"
)

// ConversationStore persists conversations, their message log and the
// recommendation audit trail.
type ConversationStore interface {
	// GetActive returns the user's most recent non-closed conversation,
	// or nil when there is none.
	GetActive(ctx context.Context, userID int64) (*models.Conversation, error)

	// Create starts a new conversation for the user in the init state.
	Create(ctx context.Context, userID int64) (*models.Conversation, error)

	// Save writes back the conversation's state and context.
	Save(ctx context.Context, conversation *models.Conversation) error

	// AppendMessage logs one chat message.
	AppendMessage(ctx context.Context, message *models.Message) error

	// AppendRecommendation records one produced recommendation set.
	AppendRecommendation(ctx context.Context, recommendation *models.Recommendation) error

	// SetRecommendationFeedback attaches the user's reaction label to a
	// previously recorded recommendation set.
	SetRecommendationFeedback(ctx context.Context, recommendationID int64, feedback string) error
}

// Recommender dispatches an interpreted turn to the recommendation engine.
type Recommender interface {
	GetRecommendations(ctx context.Context, intent nlp.Intent, entities nlp.EntitySet, userID int64) recommend.Result
}

// TurnResult is the outcome of one processed user turn.
type TurnResult struct {
	// ConversationID is the conversation the turn belongs to; zero for
	// anonymous users, whose conversations are not persisted.
	ConversationID int64 `json:"conversation_id,omitempty"`

	// Reply is the assistant's text reply.
	Reply string `json:"reply"`

	// Products are the recommended products, possibly empty.
	Products []models.Product `json:"products,omitempty"`

	// Intent is the interpreted intent of the utterance.
	Intent nlp.Intent `json:"intent"`

	// Confidence is the classifier confidence for Intent.
	Confidence float64 `json:"confidence"`

	// Entities is the merged entity dictionary after this turn.
	Entities nlp.EntitySet `json:"entities"`

	// State is the dialogue state after this turn.
	State models.ConversationState `json:"state"`

	// Algorithm labels the strategy behind Products, empty for canned
	// replies.
	Algorithm string `json:"algorithm,omitempty"`

	// ComparisonFeature carries the feature entity on comparison turns.
	ComparisonFeature string `json:"comparison_feature,omitempty"`
}

// Manager drives the conversation loop. A turn never fails: interpretation,
// recommendation and persistence problems all degrade to an apologetic
// reply while the conversation state is left as it was.
type Manager struct {
	processor *nlp.Processor
	engine    Recommender
	store     ConversationStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewManager creates a dialogue manager.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(processor *nlp.Processor, engine Recommender, store ConversationStore, logger zerolog.Logger) *Manager {
	return &Manager{
		processor: processor,
		engine:    engine,
		store:     store,
		logger:    logger.With().Str("component", "dialogue").Logger(),
		now:       time.Now,
	}
}

// ProcessMessage handles one user utterance and returns the turn outcome.
// userID 0 means anonymous: the turn runs against an ephemeral conversation
// that is not persisted, and the collaborative signal stays off.
func (m *Manager) ProcessMessage(ctx context.Context, userID int64, text string) (result TurnResult) {
	// The state the conversation held before this turn; a recovered turn
	// reports it unchanged.
	preTurnState := models.StateInit

	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error().
				Int64("user_id", userID).
				Str("panic", fmt.Sprint(rec)).
				Msg("turn processing panicked")
			result = TurnResult{Reply: replyTurnFailed, Intent: nlp.IntentUnknown, State: preTurnState}
		}
	}()

	interp := m.processor.Process(text)

	conversation, persisted, err := m.resolveConversation(ctx, userID)
	if err != nil {
		// Run the turn against an ephemeral conversation rather than
		// failing it; the turn is lost from history but still answered.
		m.logger.Error().Err(err).Int64("user_id", userID).Msg("conversation lookup failed")
		conversation = &models.Conversation{UserID: userID, State: models.StateInit}
		persisted = false
	}

	// The previous turn's state and intent feed canned-reply selection,
	// so read both before the context update overwrites them.
	prevState := conversation.State
	prevIntent := conversation.Context.LastIntent
	preTurnState = prevState

	conversation.Context.Entities = conversation.Context.Entities.Merge(interp.Entities)
	conversation.Context.LastIntent = interp.Intent
	conversation.Context.LastMessageTime = m.now()
	conversation.State = NextState(prevState, interp.Intent)

	result = TurnResult{
		ConversationID: conversation.ID,
		Intent:         interp.Intent,
		Confidence:     interp.Confidence,
		Entities:       conversation.Context.Entities,
		State:          conversation.State,
	}

	if interp.Intent.Actionable() {
		rec := m.engine.GetRecommendations(ctx, interp.Intent, conversation.Context.Entities, userID)
		result.Reply = rec.Message
		result.Products = rec.Products
		result.Algorithm = rec.Algorithm
		result.ComparisonFeature = rec.ComparisonFeature
	} else {
		result.Reply = unknownReply(prevState, prevIntent)
	}

	if persisted {
		m.persistTurn(ctx, conversation, text, &result)
	}
	return result
}

// SubmitFeedback attaches the user's reaction to a recorded recommendation
// set.
func (m *Manager) SubmitFeedback(ctx context.Context, recommendationID int64, feedback string) error {
	if err := m.store.SetRecommendationFeedback(ctx, recommendationID, feedback); err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	return nil
}

// resolveConversation returns the conversation the turn runs against and
// whether it is backed by the store. Authenticated users resume their
// active conversation or get a fresh one; anonymous users always get an
// ephemeral init-state conversation.
func (m *Manager) resolveConversation(ctx context.Context, userID int64) (*models.Conversation, bool, error) {
	if userID <= 0 {
		return &models.Conversation{State: models.StateInit}, false, nil
	}

	conversation, err := m.store.GetActive(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("get active conversation: %w", err)
	}
	if conversation != nil {
		return conversation, true, nil
	}

	conversation, err = m.store.Create(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("create conversation: %w", err)
	}
	return conversation, true, nil
}

// persistTurn writes the turn's side effects: the updated conversation, the
// message log and the recommendation audit record. Persistence failures are
// logged, never surfaced; the user already has their reply.
func (m *Manager) persistTurn(ctx context.Context, conversation *models.Conversation, text string, result *TurnResult) {
	conversation.UpdatedAt = m.now()
	if err := m.store.Save(ctx, conversation); err != nil {
		m.logger.Error().Err(err).Int64("conversation_id", conversation.ID).Msg("conversation save failed")
	}

	userMsg := &models.Message{
		ConversationID: conversation.ID,
		Kind:           models.MessageUser,
		Content:        text,
		CreatedAt:      m.now(),
	}
	if err := m.store.AppendMessage(ctx, userMsg); err != nil {
		m.logger.Error().Err(err).Int64("conversation_id", conversation.ID).Msg("user message log failed")
	}

	kind := models.MessageSystem
	if len(result.Products) > 0 {
		kind = models.MessageProduct
	}
	replyMsg := &models.Message{
		ConversationID: conversation.ID,
		Kind:           kind,
		Content:        result.Reply,
		CreatedAt:      m.now(),
	}
	if err := m.store.AppendMessage(ctx, replyMsg); err != nil {
		m.logger.Error().Err(err).Int64("conversation_id", conversation.ID).Msg("reply message log failed")
	}

	if len(result.Products) == 0 {
		return
	}
	productIDs := make([]int64, len(result.Products))
	for i := range result.Products {
		productIDs[i] = result.Products[i].ID
	}
	record := &models.Recommendation{
		ConversationID: conversation.ID,
		Algorithm:      result.Algorithm,
		ProductIDs:     productIDs,
		CreatedAt:      m.now(),
	}
	if err := m.store.AppendRecommendation(ctx, record); err != nil {
		m.logger.Error().Err(err).Int64("conversation_id", conversation.ID).Msg("recommendation record failed")
	}
}
