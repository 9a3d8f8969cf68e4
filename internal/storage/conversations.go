// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package storage

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/yourhu/CRS-System/internal/models"
)

// GetActive returns the user's most recent non-closed conversation, or nil
// when there is none.
func (s *Store) GetActive(ctx context.Context, userID int64) (*models.Conversation, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT id, user_id, state, context, created_at, updated_at
		FROM conversations
		WHERE user_id = ? AND state <> ?
		ORDER BY updated_at DESC
		LIMIT 1`, userID, string(models.StateClosed))

	conversation, err := scanConversation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query active conversation of user %d: %w", userID, err)
	}
	return conversation, nil
}

// Create starts a new conversation for the user in the init state.
func (s *Store) Create(ctx context.Context, userID int64) (*models.Conversation, error) {
	now := s.now()
	conversation := &models.Conversation{
		UserID:    userID,
		State:     models.StateInit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.conn.QueryRowContext(ctx, `INSERT INTO conversations (user_id, state, context, created_at, updated_at)
		VALUES (?, ?, '{}', ?, ?)
		RETURNING id`,
		userID, string(models.StateInit), now, now).Scan(&conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("create conversation for user %d: %w", userID, err)
	}
	return conversation, nil
}

// Save writes back the conversation's state, context and update time.
func (s *Store) Save(ctx context.Context, conversation *models.Conversation) error {
	contextJSON, err := json.Marshal(conversation.Context)
	if err != nil {
		return fmt.Errorf("encode conversation context: %w", err)
	}

	result, err := s.conn.ExecContext(ctx, `UPDATE conversations
		SET state = ?, context = ?, updated_at = ?
		WHERE id = ?`,
		string(conversation.State), string(contextJSON), conversation.UpdatedAt, conversation.ID)
	if err != nil {
		return fmt.Errorf("save conversation %d: %w", conversation.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("conversation %d not found", conversation.ID)
	}
	return nil
}

// AppendMessage logs one chat message and fills in its ID.
func (s *Store) AppendMessage(ctx context.Context, message *models.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = s.now()
	}
	err := s.conn.QueryRowContext(ctx, `INSERT INTO messages (conversation_id, kind, content, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		message.ConversationID, string(message.Kind), message.Content, message.CreatedAt).Scan(&message.ID)
	if err != nil {
		return fmt.Errorf("append message to conversation %d: %w", message.ConversationID, err)
	}
	return nil
}

// Messages returns a conversation's message log in chronological order.
func (s *Store) Messages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, conversation_id, kind, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at, id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query messages of conversation %d: %w", conversationID, err)
	}
	defer closeRows(rows)

	var messages []models.Message
	for rows.Next() {
		var (
			m    models.Message
			kind string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &kind, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Kind = models.MessageKind(kind)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// AppendRecommendation records one produced recommendation set and fills in
// its ID.
func (s *Store) AppendRecommendation(ctx context.Context, recommendation *models.Recommendation) error {
	productIDs, err := json.Marshal(recommendation.ProductIDs)
	if err != nil {
		return fmt.Errorf("encode product IDs: %w", err)
	}
	if recommendation.CreatedAt.IsZero() {
		recommendation.CreatedAt = s.now()
	}

	err = s.conn.QueryRowContext(ctx, `INSERT INTO recommendations (conversation_id, algorithm, product_ids, feedback, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		recommendation.ConversationID, recommendation.Algorithm, string(productIDs),
		recommendation.Feedback, recommendation.CreatedAt).Scan(&recommendation.ID)
	if err != nil {
		return fmt.Errorf("append recommendation to conversation %d: %w", recommendation.ConversationID, err)
	}
	return nil
}

// SetRecommendationFeedback attaches the user's reaction label to a
// recorded recommendation set.
func (s *Store) SetRecommendationFeedback(ctx context.Context, recommendationID int64, feedback string) error {
	result, err := s.conn.ExecContext(ctx, `UPDATE recommendations SET feedback = ? WHERE id = ?`,
		feedback, recommendationID)
	if err != nil {
		return fmt.Errorf("set feedback on recommendation %d: %w", recommendationID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("recommendation %d not found", recommendationID)
	}
	return nil
}

// Recommendations returns a conversation's recommendation records, newest
// first.
func (s *Store) Recommendations(ctx context.Context, conversationID int64) ([]models.Recommendation, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, conversation_id, algorithm, product_ids, feedback, created_at
		FROM recommendations
		WHERE conversation_id = ?
		ORDER BY created_at DESC, id DESC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query recommendations of conversation %d: %w", conversationID, err)
	}
	defer closeRows(rows)

	var records []models.Recommendation
	for rows.Next() {
		var (
			r          models.Recommendation
			productIDs string
		)
		if err := rows.Scan(&r.ID, &r.ConversationID, &r.Algorithm, &productIDs, &r.Feedback, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if err := json.Unmarshal([]byte(productIDs), &r.ProductIDs); err != nil {
			return nil, fmt.Errorf("decode product IDs of recommendation %d: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanConversation(row rowScanner) (*models.Conversation, error) {
	var (
		conversation models.Conversation
		state        string
		contextJSON  string
	)
	err := row.Scan(&conversation.ID, &conversation.UserID, &state, &contextJSON,
		&conversation.CreatedAt, &conversation.UpdatedAt)
	if err != nil {
		return nil, err
	}
	conversation.State = models.ConversationState(state)
	if contextJSON != "" && contextJSON != "{}" {
		if err := json.Unmarshal([]byte(contextJSON), &conversation.Context); err != nil {
			return nil, fmt.Errorf("decode context of conversation %d: %w", conversation.ID, err)
		}
	}
	return &conversation, nil
}
