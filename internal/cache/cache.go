// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package cache provides the BadgerDB-backed recommendation result cache.
// Entries expire via Badger's native TTL; expired or missing keys read as a
// cache miss, never as an error.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/crown-social/pulse/internal/metrics"
	"github.com/crown-social/pulse/internal/recommend"
)

// recommendationsKeyPrefix namespaces recommendation entries within the store.
const recommendationsKeyPrefix = "recommendations:"

// ErrNotFound is returned by Get when no live entry exists for the user.
var ErrNotFound = errors.New("cache entry not found")

// Options configure the cache store.
type Options struct {
	// Dir is the on-disk location of the Badger database.
	// Ignored when InMemory is set.
	Dir string

	// InMemory keeps the store entirely in memory. Used by tests and by
	// deployments without a persistent volume.
	InMemory bool
}

// Store is a BadgerDB-backed recommendation cache. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens or creates the cache database.
func Open(opts Options, logger zerolog.Logger) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Badger's own logger is noisy at startup; cache issues surface through
	// metrics and the store's error returns instead.
	badgerOpts.Logger = nil

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetRecommendations stores a user's recommendation entry with the given TTL.
func (s *Store) SetRecommendations(ctx context.Context, userID string, entry recommend.CachedRecommendations, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		metrics.CacheWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(recommendationsKeyPrefix+userID), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		metrics.CacheWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("set cache entry: %w", err)
	}

	metrics.CacheWrites.WithLabelValues("ok").Inc()
	return nil
}

// GetRecommendations retrieves a user's cached entry. Returns ErrNotFound
// when no live entry exists; Badger treats expired keys as absent.
func (s *Store) GetRecommendations(ctx context.Context, userID string) (*recommend.CachedRecommendations, error) {
	var entry recommend.CachedRecommendations

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recommendationsKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get cache entry: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	if errors.Is(err, ErrNotFound) {
		metrics.CacheMisses.Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metrics.CacheHits.Inc()
	return &entry, nil
}

// InvalidateRecommendations drops a user's cached entry. Deleting an absent
// key is not an error.
func (s *Store) InvalidateRecommendations(ctx context.Context, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(recommendationsKeyPrefix + userID))
	})
	if err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}
