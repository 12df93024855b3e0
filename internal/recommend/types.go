// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"context"
	"time"

	"github.com/crown-social/pulse/internal/models"
)

// Algorithm tags which ranking branch produced a result.
type Algorithm string

const (
	// AlgorithmFallback is returned when the candidate pool is empty.
	AlgorithmFallback Algorithm = "fallback"

	// AlgorithmTrending is the engagement-only ranking used when the user
	// has no usable liked-content signal.
	AlgorithmTrending Algorithm = "trending_fallback"

	// AlgorithmContentBased is the TF-IDF similarity ranking blended with
	// engagement.
	AlgorithmContentBased Algorithm = "content_based_collaborative"
)

// Request is a recommendation request.
type Request struct {
	// UserID is the user to recommend posts for.
	UserID string `json:"user_id"`

	// Limit is the maximum number of recommendations to return.
	// Defaults to Config.Limits.DefaultLimit when zero.
	Limit int `json:"limit,omitempty"`

	// ExcludeSeen removes posts the user has already interacted with.
	ExcludeSeen bool `json:"exclude_seen"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Result is a recommendation response.
type Result struct {
	// Recommendations is the ordered list of recommended post IDs.
	Recommendations []string `json:"recommendations"`

	// Algorithm tags the branch that produced the result.
	Algorithm Algorithm `json:"algorithm"`

	// Count is the number of recommendations returned.
	Count int `json:"count"`

	// UserLikedItems is the number of liked posts that contributed to the
	// content profile. Present only for the content-based branch.
	UserLikedItems int `json:"user_liked_items,omitempty"`
}

// ScoredCandidate is a candidate post with its per-signal scores.
// Created per request and discarded after ranking.
type ScoredCandidate struct {
	// PostID is the candidate post identifier.
	PostID string `json:"post_id"`

	// Similarity is the cosine similarity against the user profile, in [0,1].
	// Zero in the trending branch.
	Similarity float64 `json:"similarity"`

	// Engagement is the normalized engagement score, in [0,1].
	// Zero in the trending branch.
	Engagement float64 `json:"engagement"`

	// Score is the ranking key: the blended score in the content-based
	// branch, or the raw weighted engagement in the trending branch.
	Score float64 `json:"score"`
}

// UserProfile is the per-request content profile derived from a user's
// interaction history. It is ephemeral and never persisted.
type UserProfile struct {
	// LikedContent holds the content of liked posts, most recent first.
	LikedContent []string

	// TagInterests accumulates the tags of liked posts. Collected but not
	// consumed by ranking; retained for interest analysis.
	TagInterests []string

	// SeenIDs is the set of post IDs appearing in any fetched interaction,
	// regardless of type.
	SeenIDs map[string]struct{}
}

// HasContentSignal reports whether the profile can drive content-based
// ranking. An empty liked-content list forces the fallback branch.
func (p *UserProfile) HasContentSignal() bool {
	return len(p.LikedContent) > 0
}

// Seen reports whether the user has interacted with the given post.
func (p *UserProfile) Seen(postID string) bool {
	_, ok := p.SeenIDs[postID]
	return ok
}

// CandidateSource supplies the pool of eligible posts.
type CandidateSource interface {
	// ActiveCandidates returns active, public/friends-visible posts,
	// most recent first, bounded by max. An empty result is not an error.
	ActiveCandidates(ctx context.Context, max int) ([]models.Post, error)
}

// InteractionSource supplies a user's interaction history and resolves
// liked posts to their content.
type InteractionSource interface {
	// RecentInteractions returns the user's interactions, most recent
	// first, bounded by max.
	RecentInteractions(ctx context.Context, userID string, max int) ([]models.Interaction, error)

	// PostByID looks up a post by ID. Returns (nil, nil) when the post
	// does not exist.
	PostByID(ctx context.Context, postID string) (*models.Post, error)
}

// CachedRecommendations is the cache entry written after each computation.
// ExcludeSeen records the setting the entry was computed under; an entry is
// only replayable for requests with the same setting.
type CachedRecommendations struct {
	Recommendations []string  `json:"recommendations"`
	Algorithm       Algorithm `json:"algorithm"`
	UserLikedItems  int       `json:"user_liked_items,omitempty"`
	ExcludeSeen     bool      `json:"exclude_seen"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Cache stores the last computed recommendation list per user. Entries are
// advisory: absence or staleness never affects a fresh computation.
type Cache interface {
	// SetRecommendations stores the entry under the user's key with the
	// given expiry.
	SetRecommendations(ctx context.Context, userID string, entry CachedRecommendations, ttl time.Duration) error
}
