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

	"github.com/crown-social/pulse/internal/models"
)

// SeedMockData populates an empty posts table with sample content so a
// fresh deployment serves non-empty trending results. A non-empty table is
// left untouched.
func (db *DB) SeedMockData(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	samples := []models.Post{
		{
			AuthorID: "seed-author-1", Content: "Exploring the mountain trails this weekend, the views were incredible",
			Tags: []string{"hiking", "outdoors"}, LikesCount: 42, CommentsCount: 7, SharesCount: 3,
		},
		{
			AuthorID: "seed-author-2", Content: "Just finished a great book about distributed systems design",
			Tags: []string{"books", "technology"}, LikesCount: 18, CommentsCount: 12, SharesCount: 1,
		},
		{
			AuthorID: "seed-author-1", Content: "Homemade pasta night, the recipe turned out better than expected",
			Tags: []string{"cooking", "food"}, LikesCount: 65, CommentsCount: 23, SharesCount: 9,
		},
		{
			AuthorID: "seed-author-3", Content: "Morning run along the river, training for the autumn marathon",
			Tags: []string{"running", "fitness"}, LikesCount: 31, CommentsCount: 4, SharesCount: 2,
		},
		{
			AuthorID: "seed-author-2", Content: "Photography tips for capturing city lights after sunset",
			Tags: []string{"photography", "city"}, LikesCount: 54, CommentsCount: 16, SharesCount: 11,
		},
	}

	for i := range samples {
		samples[i].ID = uuid.New().String()
		samples[i].Visibility = models.VisibilityPublic
		samples[i].IsActive = true
		samples[i].CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		if err := db.InsertPost(ctx, &samples[i]); err != nil {
			return i, fmt.Errorf("seed post %d: %w", i, err)
		}
	}
	return len(samples), nil
}
