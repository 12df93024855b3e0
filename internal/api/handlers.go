// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package api provides HTTP routing and handlers using the Chi router.
package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crown-social/pulse/internal/database"
	"github.com/crown-social/pulse/internal/recommend"
)

// Recommender computes recommendation lists. Implemented by recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
}

// Store is the persistence surface the handlers need.
type Store interface {
	Ping(ctx context.Context) error
	UpsertUserProfile(ctx context.Context, profile *database.UserProfile) error
	EngagementAnalytics(ctx context.Context, userID string, days int) (*database.EngagementSummary, error)
}

// ResultCache serves previously computed recommendation lists.
type ResultCache interface {
	GetRecommendations(ctx context.Context, userID string) (*recommend.CachedRecommendations, error)
}

// Handler contains dependencies for the API handlers.
type Handler struct {
	engine    Recommender
	store     Store
	cache     ResultCache // nil disables the cache read path
	limits    recommend.LimitsConfig
	validate  *validator.Validate
	startTime time.Time
}

// NewHandler creates the API handler. cache may be nil, in which case every
// recommendation request computes a fresh result.
func NewHandler(engine Recommender, store Store, cache ResultCache) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		cache:     cache,
		limits:    recommend.DefaultConfig().Limits,
		validate:  validator.New(),
		startTime: time.Now(),
	}
}
