// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

// Package nlp turns free-text shopping utterances into structured
// interpretations: an intent plus an entity set.
//
// The package has three layers:
//
//   - Extract: a pure lexical matcher producing an EntitySet from fixed
//     vocabularies (category, brand, feature, named price band) and numeric
//     price patterns. First match wins per field, in declared vocabulary
//     order.
//   - Classifier: intent prediction behind a small interface with two
//     implementations, a statistical model loaded from an artifact file and
//     a deterministic keyword rule engine.
//   - Processor: combines both, applying a confidence-gated fallback policy.
//     The statistical model is precise on enumerated phrasing but
//     under-confident on colloquial "unknown" utterances; the rule engine is
//     a cheap high-precision detector for the recommend/info/compare keyword
//     space that corrects that blind spot without overriding confident
//     statistical predictions.
//
// Processor.Process never fails: any internal error degrades to intent
// "unknown" with confidence 0 plus best-effort entities.
//
// The package depends on nothing else in this repository so it can be
// consumed by both the dialogue manager and the recommendation engine
// without import cycles.
package nlp
