// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/crown-social/pulse/internal/metrics"
)

// EngagementSummary aggregates the engagement a user's own posts received
// over a trailing window.
type EngagementSummary struct {
	UserID        string `json:"user_id"`
	PeriodDays    int    `json:"period_days"`
	TotalPosts    int    `json:"total_posts"`
	TotalLikes    int    `json:"total_likes"`
	TotalComments int    `json:"total_comments"`
	TotalShares   int    `json:"total_shares"`
	TotalViews    int    `json:"total_views"`

	// AvgEngagementPerPost is (likes + comments + shares) / max(posts, 1).
	AvgEngagementPerPost float64 `json:"avg_engagement_per_post"`

	// DailyEngagement maps YYYY-MM-DD to the summed likes + comments +
	// shares of posts created that day. Days without posts are absent.
	DailyEngagement map[string]int `json:"daily_engagement"`
}

// EngagementAnalytics computes the engagement summary for posts the user
// authored within the last days days.
func (db *DB) EngagementAnalytics(ctx context.Context, userID string, days int) (*EngagementSummary, error) {
	end := time.Now().UTC()
	windowStart := end.AddDate(0, 0, -days)

	summary := &EngagementSummary{
		UserID:          userID,
		PeriodDays:      days,
		DailyEngagement: make(map[string]int),
	}

	start := time.Now()
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(likes_count), 0),
		       COALESCE(SUM(comments_count), 0),
		       COALESCE(SUM(shares_count), 0),
		       COALESCE(SUM(views_count), 0)
		FROM posts
		WHERE author_id = ? AND created_at >= ? AND created_at <= ?`,
		userID, windowStart, end).Scan(
		&summary.TotalPosts, &summary.TotalLikes, &summary.TotalComments,
		&summary.TotalShares, &summary.TotalViews)
	metrics.ObserveDBQuery("engagement_totals", start, err)
	if err != nil {
		return nil, fmt.Errorf("query engagement totals: %w", err)
	}

	divisor := summary.TotalPosts
	if divisor < 1 {
		divisor = 1
	}
	summary.AvgEngagementPerPost = float64(summary.TotalLikes+summary.TotalComments+summary.TotalShares) / float64(divisor)

	start = time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT strftime(created_at, '%Y-%m-%d') AS day,
		       SUM(likes_count + comments_count + shares_count)
		FROM posts
		WHERE author_id = ? AND created_at >= ? AND created_at <= ?
		GROUP BY day`,
		userID, windowStart, end)
	metrics.ObserveDBQuery("engagement_daily", start, err)
	if err != nil {
		return nil, fmt.Errorf("query daily engagement: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			day   string
			total int
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("scan daily engagement: %w", err)
		}
		summary.DailyEngagement[day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily engagement: %w", err)
	}

	return summary, nil
}
