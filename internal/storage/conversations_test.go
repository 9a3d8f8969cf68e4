// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/yourhu/CRS-System/internal/models"
	"github.com/yourhu/CRS-System/internal/nlp"
)

func TestConversationLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// No active conversation yet.
	active, err := store.GetActive(ctx, 1)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active != nil {
		t.Fatalf("active = %+v, want nil before create", active)
	}

	conversation, err := store.Create(ctx, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if conversation.ID == 0 || conversation.State != models.StateInit {
		t.Fatalf("created conversation = %+v, want init state with an ID", conversation)
	}

	conversation.State = models.StateCollecting
	conversation.Context = models.Context{
		Entities:   nlp.EntitySet{Category: "手机", Brand: "华为", Price: 3000},
		LastIntent: nlp.IntentRecommend,
	}
	conversation.UpdatedAt = time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, conversation); err != nil {
		t.Fatalf("save: %v", err)
	}

	active, err = store.GetActive(ctx, 1)
	if err != nil {
		t.Fatalf("get active after save: %v", err)
	}
	if active == nil || active.ID != conversation.ID {
		t.Fatalf("active = %+v, want conversation %d", active, conversation.ID)
	}
	if active.State != models.StateCollecting {
		t.Errorf("state = %s, want collecting", active.State)
	}
	if active.Context.Entities.Category != "手机" || active.Context.Entities.Brand != "华为" ||
		active.Context.Entities.Price != 3000 {
		t.Errorf("context entities = %+v, want round-tripped values", active.Context.Entities)
	}
	if active.Context.LastIntent != nlp.IntentRecommend {
		t.Errorf("last intent = %s, want recommend", active.Context.LastIntent)
	}

	// Closed conversations are never returned as active.
	conversation.State = models.StateClosed
	if err := store.Save(ctx, conversation); err != nil {
		t.Fatalf("close: %v", err)
	}
	active, err = store.GetActive(ctx, 1)
	if err != nil {
		t.Fatalf("get active after close: %v", err)
	}
	if active != nil {
		t.Errorf("active = %+v, want nil after close", active)
	}

	// Saving an unknown conversation is an error.
	if err := store.Save(ctx, &models.Conversation{ID: 9999}); err == nil {
		t.Error("expected error saving unknown conversation")
	}
}

func TestMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conversation, err := store.Create(ctx, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	base := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	entries := []models.Message{
		{ConversationID: conversation.ID, Kind: models.MessageUser, Content: "推荐一款手机", CreatedAt: base},
		{ConversationID: conversation.ID, Kind: models.MessageProduct, Content: "为您推荐以下手机商品：", CreatedAt: base.Add(time.Second)},
		{ConversationID: conversation.ID, Kind: models.MessageUser, Content: "太贵了", CreatedAt: base.Add(2 * time.Second)},
	}
	for i := range entries {
		if err := store.AppendMessage(ctx, &entries[i]); err != nil {
			t.Fatalf("append message %d: %v", i, err)
		}
		if entries[i].ID == 0 {
			t.Fatalf("message %d got no ID", i)
		}
	}

	messages, err := store.Messages(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(messages) != len(entries) {
		t.Fatalf("got %d messages, want %d", len(messages), len(entries))
	}
	for i, m := range messages {
		if m.Content != entries[i].Content || m.Kind != entries[i].Kind {
			t.Errorf("message %d = %+v, want chronological %+v", i, m, entries[i])
		}
	}
}

func TestRecommendations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conversation, err := store.Create(ctx, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	base := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	first := models.Recommendation{
		ConversationID: conversation.ID,
		Algorithm:      "rule_based",
		ProductIDs:     []int64{3, 1, 2},
		CreatedAt:      base,
	}
	second := models.Recommendation{
		ConversationID: conversation.ID,
		Algorithm:      "hybrid",
		ProductIDs:     []int64{2},
		CreatedAt:      base.Add(time.Minute),
	}
	if err := store.AppendRecommendation(ctx, &first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := store.AppendRecommendation(ctx, &second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	if err := store.SetRecommendationFeedback(ctx, first.ID, "dislike"); err != nil {
		t.Fatalf("set feedback: %v", err)
	}
	if err := store.SetRecommendationFeedback(ctx, 9999, "like"); err == nil {
		t.Error("expected error for unknown recommendation")
	}

	records, err := store.Recommendations(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != second.ID {
		t.Errorf("records[0] = %d, want newest first %d", records[0].ID, second.ID)
	}
	got := records[1]
	if got.Algorithm != "rule_based" || got.Feedback != "dislike" {
		t.Errorf("record = %+v, want rule_based with dislike feedback", got)
	}
	if len(got.ProductIDs) != 3 || got.ProductIDs[0] != 3 || got.ProductIDs[1] != 1 || got.ProductIDs[2] != 2 {
		t.Errorf("product IDs = %v, want ranked order [3 1 2]", got.ProductIDs)
	}
}
