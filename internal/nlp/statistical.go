// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

import (
	"fmt"
	"math"
	"os"

	json "github.com/goccy/go-json"
)

// modelArtifact is the on-disk format of a trained intent model: a
// multinomial naive Bayes over character n-gram features, exported by the
// offline training job as a single JSON file.
type modelArtifact struct {
	// Labels are the class names, in class-index order. They must match
	// the Intents list of this package.
	Labels []string `json:"labels"`

	// Features maps each character n-gram to its feature index.
	Features map[string]int `json:"features"`

	// LogPrior holds the per-class log prior probabilities.
	LogPrior []float64 `json:"log_prior"`

	// LogLikelihood holds per-class, per-feature log likelihoods,
	// indexed [class][feature].
	LogLikelihood [][]float64 `json:"log_likelihood"`
}

// StatisticalClassifier is a multinomial naive Bayes intent classifier
// loaded from a pretrained model artifact. The model is read once at
// startup and is immutable afterwards, so the classifier is safe for
// concurrent use.
type StatisticalClassifier struct {
	labels        []Intent
	features      map[string]int
	logPrior      []float64
	logLikelihood [][]float64
}

// LoadStatisticalClassifier reads and validates a model artifact.
// Callers are expected to treat a load failure as a normal state and fall
// back to the rule classifier; nothing here is fatal.
func LoadStatisticalClassifier(path string) (*StatisticalClassifier, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if err := artifact.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	labels := make([]Intent, len(artifact.Labels))
	for i, label := range artifact.Labels {
		labels[i] = Intent(label)
	}

	return &StatisticalClassifier{
		labels:        labels,
		features:      artifact.Features,
		logPrior:      artifact.LogPrior,
		logLikelihood: artifact.LogLikelihood,
	}, nil
}

// validate checks the artifact's internal consistency.
func (a *modelArtifact) validate() error {
	if len(a.Labels) == 0 {
		return fmt.Errorf("no labels")
	}
	if len(a.LogPrior) != len(a.Labels) {
		return fmt.Errorf("log_prior has %d entries, want %d", len(a.LogPrior), len(a.Labels))
	}
	if len(a.LogLikelihood) != len(a.Labels) {
		return fmt.Errorf("log_likelihood has %d rows, want %d", len(a.LogLikelihood), len(a.Labels))
	}
	for i, row := range a.LogLikelihood {
		if len(row) != len(a.Features) {
			return fmt.Errorf("log_likelihood row %d has %d entries, want %d", i, len(row), len(a.Features))
		}
	}
	for _, label := range a.Labels {
		if !Intent(label).Valid() {
			return fmt.Errorf("unknown label %q", label)
		}
	}
	return nil
}

// Name returns the classifier identifier.
func (c *StatisticalClassifier) Name() string { return "naive_bayes" }

// Classify scores text against every class and returns the argmax intent
// with a softmax confidence over the class scores.
func (c *StatisticalClassifier) Classify(text string) (Prediction, error) {
	tokens := ngrams(text)
	if len(tokens) == 0 {
		return Prediction{Intent: IntentUnknown, Confidence: 0}, nil
	}

	scores := make([]float64, len(c.labels))
	copy(scores, c.logPrior)

	for _, token := range tokens {
		idx, ok := c.features[token]
		if !ok {
			continue
		}
		for class := range scores {
			scores[class] += c.logLikelihood[class][idx]
		}
	}

	best := 0
	for class, score := range scores {
		if score > scores[best] {
			best = class
		}
	}

	return Prediction{
		Intent:     c.labels[best],
		Confidence: softmaxAt(scores, best),
	}, nil
}

// ngrams tokenizes text into overlapping rune unigrams and bigrams, the
// feature space the training job uses for Chinese shopping utterances.
func ngrams(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	tokens := make([]string, 0, 2*len(runes))
	for i, r := range runes {
		tokens = append(tokens, string(r))
		if i+1 < len(runes) {
			tokens = append(tokens, string(runes[i:i+2]))
		}
	}
	return tokens
}

// softmaxAt returns the softmax probability of scores[idx], computed with
// the max-shift trick for numerical stability.
func softmaxAt(scores []float64, idx int) float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - maxScore)
	}
	return math.Exp(scores[idx]-maxScore) / sum
}
