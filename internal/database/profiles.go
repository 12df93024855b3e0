// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/crown-social/pulse/internal/metrics"
)

// UserProfile is the persisted interest analysis for a user.
type UserProfile struct {
	UserID              string         `json:"user_id"`
	Interests           []string       `json:"interests"`
	InteractionPatterns map[string]int `json:"interaction_patterns"`
	AnalyzedPosts       int            `json:"analyzed_posts"`
	LastAnalysis        time.Time      `json:"last_analysis"`
}

// UpsertUserProfile stores or replaces a user's interest analysis.
func (db *DB) UpsertUserProfile(ctx context.Context, profile *UserProfile) error {
	interests, err := json.Marshal(profile.Interests)
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}
	patterns, err := json.Marshal(profile.InteractionPatterns)
	if err != nil {
		return fmt.Errorf("marshal interaction patterns: %w", err)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, interests, interaction_patterns, analyzed_posts, last_analysis)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			interests = excluded.interests,
			interaction_patterns = excluded.interaction_patterns,
			analyzed_posts = excluded.analyzed_posts,
			last_analysis = excluded.last_analysis`,
		profile.UserID, string(interests), string(patterns),
		profile.AnalyzedPosts, profile.LastAnalysis)
	metrics.ObserveDBQuery("upsert_user_profile", start, err)
	if err != nil {
		return fmt.Errorf("upsert user profile: %w", err)
	}
	return nil
}

// UserProfileByID retrieves a user's stored interest analysis.
// Returns (nil, nil) when no analysis exists.
func (db *DB) UserProfileByID(ctx context.Context, userID string) (*UserProfile, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		SELECT user_id, interests, interaction_patterns, analyzed_posts, last_analysis
		FROM user_profiles
		WHERE user_id = ?`, userID)

	var (
		profile   UserProfile
		interests string
		patterns  string
	)
	err := row.Scan(&profile.UserID, &interests, &patterns,
		&profile.AnalyzedPosts, &profile.LastAnalysis)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.ObserveDBQuery("user_profile_by_id", start, nil)
		return nil, nil
	}
	metrics.ObserveDBQuery("user_profile_by_id", start, err)
	if err != nil {
		return nil, fmt.Errorf("query user profile %s: %w", userID, err)
	}

	if err := json.Unmarshal([]byte(interests), &profile.Interests); err != nil {
		return nil, fmt.Errorf("unmarshal interests: %w", err)
	}
	if err := json.Unmarshal([]byte(patterns), &profile.InteractionPatterns); err != nil {
		return nil, fmt.Errorf("unmarshal interaction patterns: %w", err)
	}
	return &profile, nil
}
