// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crown-social/pulse/internal/metrics"
	"github.com/crown-social/pulse/internal/models"
)

// InsertInteraction records an interaction and bumps the matching counter
// on the post row so engagement scores reflect it immediately.
func (db *DB) InsertInteraction(ctx context.Context, in *models.Interaction) error {
	counterColumn := map[models.InteractionType]string{
		models.InteractionLike:    "likes_count",
		models.InteractionComment: "comments_count",
		models.InteractionShare:   "shares_count",
		models.InteractionView:    "views_count",
	}[in.Type]
	if counterColumn == "" {
		return fmt.Errorf("unknown interaction type %q", in.Type)
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		metrics.ObserveDBQuery("insert_interaction", start, err)
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO interactions (id, user_id, post_id, type, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), in.UserID, in.PostID, string(in.Type), createdAt)
	if err != nil {
		metrics.ObserveDBQuery("insert_interaction", start, err)
		return fmt.Errorf("insert interaction: %w", err)
	}

	// #nosec G201 -- counterColumn comes from a fixed lookup table above.
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE posts SET %s = %s + 1 WHERE id = ?", counterColumn, counterColumn),
		in.PostID)
	if err != nil {
		metrics.ObserveDBQuery("insert_interaction", start, err)
		return fmt.Errorf("update post counter: %w", err)
	}

	err = tx.Commit()
	metrics.ObserveDBQuery("insert_interaction", start, err)
	if err != nil {
		return fmt.Errorf("commit interaction: %w", err)
	}
	return nil
}

// RecentInteractions returns the user's interactions, most recent first,
// bounded by max.
func (db *DB) RecentInteractions(ctx context.Context, userID string, max int) ([]models.Interaction, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, post_id, type, created_at
		FROM interactions
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, max)
	metrics.ObserveDBQuery("recent_interactions", start, err)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var interactions []models.Interaction
	for rows.Next() {
		var (
			in  models.Interaction
			typ string
		)
		if err := rows.Scan(&in.UserID, &in.PostID, &typ, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.Type = models.InteractionType(typ)
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return interactions, nil
}
