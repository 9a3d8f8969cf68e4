// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package dialogue drives the conversation loop: it resolves the active
// conversation for a user, interprets each utterance through the NLP
// processor, advances the dialogue state machine, dispatches actionable
// intents to the recommendation engine and persists the turn.
package dialogue
