// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package interests extracts topical interests from a user's interaction
// history. The analysis counts interaction types and pulls the most common
// content keywords, which the store persists per user.
package interests

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

const (
	// maxInterests caps the extracted keyword list.
	maxInterests = 20

	// minKeywordLength drops short words that carry little topical signal.
	// Keywords must be strictly longer than this.
	minKeywordLength = 3
)

// InteractionRecord is one entry of the interaction history submitted for
// analysis. Content is optional; entries without it still count toward the
// interaction patterns.
type InteractionRecord struct {
	Type    string `json:"type" validate:"required"`
	Content string `json:"content,omitempty"`
}

// Analysis is the result of analyzing a user's interaction history.
type Analysis struct {
	UserID              string         `json:"user_id"`
	Interests           []string       `json:"extracted_interests"`
	InteractionPatterns map[string]int `json:"interaction_patterns"`
	AnalyzedAt          time.Time      `json:"analysis_timestamp"`
}

// Analyze counts interaction types and extracts the top content keywords
// from the history. Keywords are lowercased words longer than three
// characters, ranked by frequency; ties break lexicographically so the
// result is deterministic.
func Analyze(userID string, history []InteractionRecord) *Analysis {
	patterns := make(map[string]int)
	keywordCounts := make(map[string]int)

	for _, record := range history {
		patterns[record.Type]++
		for _, word := range keywords(record.Content) {
			keywordCounts[word]++
		}
	}

	ranked := make([]string, 0, len(keywordCounts))
	for word := range keywordCounts {
		ranked = append(ranked, word)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if keywordCounts[ranked[i]] != keywordCounts[ranked[j]] {
			return keywordCounts[ranked[i]] > keywordCounts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > maxInterests {
		ranked = ranked[:maxInterests]
	}

	return &Analysis{
		UserID:              userID,
		Interests:           ranked,
		InteractionPatterns: patterns,
		AnalyzedAt:          time.Now().UTC(),
	}
}

// keywords lowercases the text and returns its words longer than
// minKeywordLength characters.
func keywords(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if len(f) > minKeywordLength {
			words = append(words, f)
		}
	}
	return words
}
