// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crown-social/pulse/internal/models"
)

// Engine computes personalized post recommendations. It is stateless across
// requests: each call fetches a fresh candidate pool and interaction history,
// builds an ephemeral user profile, and ranks candidates by blended
// content-similarity and engagement. Safe for concurrent use.
type Engine struct {
	config       *Config
	logger       zerolog.Logger
	candidates   CandidateSource
	interactions InteractionSource
	cache        Cache
}

// NewEngine creates a recommendation engine. cache may be nil, in which case
// results are never cached. The configuration is cloned so later mutation by
// the caller cannot affect a running engine.
func NewEngine(cfg *Config, logger zerolog.Logger, candidates CandidateSource, interactions InteractionSource, cache Cache) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}
	if candidates == nil {
		return nil, fmt.Errorf("candidate source is required")
	}
	if interactions == nil {
		return nil, fmt.Errorf("interaction source is required")
	}
	return &Engine{
		config:       cfg.Clone(),
		logger:       logger.With().Str("component", "recommend").Logger(),
		candidates:   candidates,
		interactions: interactions,
		cache:        cache,
	}, nil
}

// Recommend produces an ordered recommendation list for the request's user.
// It never returns a partial result: any source or computation failure fails
// the whole request. Cache writes are best-effort and never fail the request.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	req = e.prepareRequest(req)
	start := time.Now()

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()

	pool, err := e.candidates.ActiveCandidates(ctx, e.config.Limits.MaxCandidates)
	if err != nil {
		return nil, &UnavailableError{Source: "candidate source", Err: err}
	}
	if len(pool) == 0 {
		logger.Info().Msg("empty candidate pool, returning fallback")
		return &Result{
			Recommendations: []string{},
			Algorithm:       AlgorithmFallback,
			Count:           0,
		}, nil
	}

	interactions, err := e.interactions.RecentInteractions(ctx, req.UserID, e.config.Limits.MaxInteractions)
	if err != nil {
		return nil, &UnavailableError{Source: "interaction source", Err: err}
	}

	profile, err := BuildProfile(ctx, e.interactions, interactions)
	if err != nil {
		return nil, err
	}

	var (
		scored    []ScoredCandidate
		algorithm Algorithm
	)
	if profile.HasContentSignal() {
		scored, err = e.scoreContentBased(pool, profile)
		if err != nil {
			return nil, err
		}
		algorithm = AlgorithmContentBased
	} else {
		scored = scoreTrending(pool, e.config.Trending)
		algorithm = AlgorithmTrending
	}

	if req.ExcludeSeen {
		scored = filterSeen(scored, profile)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	limit := req.Limit
	if len(scored) > limit {
		scored = scored[:limit]
	}

	ids := make([]string, len(scored))
	for i, c := range scored {
		ids[i] = c.PostID
	}

	result := &Result{
		Recommendations: ids,
		Algorithm:       algorithm,
		Count:           len(ids),
	}
	if algorithm == AlgorithmContentBased {
		result.UserLikedItems = len(profile.LikedContent)
	}

	e.writeCache(ctx, logger, req, result)

	logger.Debug().
		Str("algorithm", string(algorithm)).
		Int("count", result.Count).
		Int("pool_size", len(pool)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendations computed")

	return result, nil
}

// prepareRequest applies the default and maximum result limits and assigns a
// request ID when the caller did not supply one.
func (e *Engine) prepareRequest(req Request) Request {
	if req.Limit <= 0 {
		req.Limit = e.config.Limits.DefaultLimit
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	return req
}

// scoreContentBased vectorizes the liked content together with the candidate
// pool, computes each candidate's cosine similarity against the mean liked
// vector, and blends it with the normalized engagement score.
func (e *Engine) scoreContentBased(pool []models.Post, profile *UserProfile) ([]ScoredCandidate, error) {
	docs := make([]string, 0, len(profile.LikedContent)+len(pool))
	docs = append(docs, profile.LikedContent...)
	for i := range pool {
		docs = append(docs, pool[i].Content)
	}

	vec := NewVectorizer(e.config.Vectorizer.MaxFeatures)
	vectors, err := vec.FitTransform(docs)
	if err != nil {
		return nil, &ComputationError{Stage: "vectorize", Err: err}
	}

	liked := vectors[:len(profile.LikedContent)]
	candidates := vectors[len(profile.LikedContent):]
	mean := meanVector(liked)

	scored := make([]ScoredCandidate, 0, len(pool))
	for i := range pool {
		sim := cosineSimilarity(mean, candidates[i])
		eng := e.engagementScore(&pool[i])
		scored = append(scored, ScoredCandidate{
			PostID:     pool[i].ID,
			Similarity: sim,
			Engagement: eng,
			Score:      e.config.Blend.Similarity*sim + e.config.Blend.Engagement*eng,
		})
	}
	return scored, nil
}

// engagementScore maps a post's raw counters to a bounded popularity score
// in [0, 1]: min((0.3*likes + 0.4*comments + 0.3*shares)/100, 1) under the
// default weights. Views do not contribute.
func (e *Engine) engagementScore(p *models.Post) float64 {
	w := e.config.Engagement
	raw := w.Likes*float64(p.LikesCount) +
		w.Comments*float64(p.CommentsCount) +
		w.Shares*float64(p.SharesCount)
	return math.Min(raw/w.Divisor, 1)
}

// filterSeen drops candidates the user has already interacted with,
// preserving order.
func filterSeen(scored []ScoredCandidate, profile *UserProfile) []ScoredCandidate {
	kept := scored[:0]
	for _, c := range scored {
		if !profile.Seen(c.PostID) {
			kept = append(kept, c)
		}
	}
	return kept
}

// writeCache stores the result for later retrieval. Failures are logged and
// swallowed: the cache is advisory and never affects the response.
func (e *Engine) writeCache(ctx context.Context, logger zerolog.Logger, req Request, result *Result) {
	if e.cache == nil || !e.config.Cache.Enabled {
		return
	}
	entry := CachedRecommendations{
		Recommendations: result.Recommendations,
		Algorithm:       result.Algorithm,
		UserLikedItems:  result.UserLikedItems,
		ExcludeSeen:     req.ExcludeSeen,
		GeneratedAt:     time.Now().UTC(),
	}
	if err := e.cache.SetRecommendations(ctx, req.UserID, entry, e.config.Cache.TTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache recommendations")
	}
}
