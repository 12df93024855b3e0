// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/crown-social/pulse/internal/metrics"
	"github.com/crown-social/pulse/internal/models"
)

// BreakerStore wraps the store's read paths with a circuit breaker so a
// wedged or failing DuckDB file degrades to fast rejections instead of
// piling up blocked requests. The recommendation engine treats any error
// from these methods as a source outage.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests exercise the wrapped store directly.
type BreakerStore struct {
	db     *DB
	cb     *gobreaker.CircuitBreaker[any]
	name   string
	logger zerolog.Logger
}

// NewBreakerStore wraps db with circuit breaker protection.
// The breaker opens after a 60% failure rate over at least 10 requests,
// and probes recovery after 30 seconds.
func NewBreakerStore(db *DB, logger zerolog.Logger) *BreakerStore {
	cbName := "store"
	logger = logger.With().Str("component", "store-breaker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("store circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerStore{db: db, cb: cb, name: cbName, logger: logger}
}

// execute runs fn through the breaker and records the outcome.
func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// castResult type-casts the breaker result with error checking.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, errors.New("circuit breaker: unexpected result type")
	}
	return typed, nil
}

// ActiveCandidates implements recommend.CandidateSource.
func (b *BreakerStore) ActiveCandidates(ctx context.Context, max int) ([]models.Post, error) {
	return castResult[[]models.Post](b.execute(func() (any, error) {
		return b.db.ActiveCandidates(ctx, max)
	}))
}

// RecentInteractions implements recommend.InteractionSource.
func (b *BreakerStore) RecentInteractions(ctx context.Context, userID string, max int) ([]models.Interaction, error) {
	return castResult[[]models.Interaction](b.execute(func() (any, error) {
		return b.db.RecentInteractions(ctx, userID, max)
	}))
}

// PostByID implements recommend.InteractionSource.
func (b *BreakerStore) PostByID(ctx context.Context, postID string) (*models.Post, error) {
	result, err := b.execute(func() (any, error) {
		post, err := b.db.PostByID(ctx, postID)
		if err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		return nil, err
	}
	post, _ := result.(*models.Post)
	return post, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
