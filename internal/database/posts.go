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
	"strings"
	"time"

	"github.com/crown-social/pulse/internal/metrics"
	"github.com/crown-social/pulse/internal/models"
)

// InsertPost stores a new post.
func (db *DB) InsertPost(ctx context.Context, p *models.Post) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, content, tags, likes_count, comments_count,
		                   shares_count, views_count, visibility, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Content, strings.Join(p.Tags, ","),
		p.LikesCount, p.CommentsCount, p.SharesCount, p.ViewsCount,
		string(p.Visibility), p.IsActive, p.CreatedAt)
	metrics.ObserveDBQuery("insert_post", start, err)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// ActiveCandidates returns active public and friends-visible posts, most
// recent first, bounded by max. Private and inactive posts never appear.
func (db *DB) ActiveCandidates(ctx context.Context, max int) ([]models.Post, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, author_id, content, tags, likes_count, comments_count,
		       shares_count, views_count, visibility, is_active, created_at
		FROM posts
		WHERE is_active = TRUE AND visibility IN ('public', 'friends')
		ORDER BY created_at DESC
		LIMIT ?`, max)
	metrics.ObserveDBQuery("active_candidates", start, err)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPosts(rows)
}

// PostByID looks up a post by ID. Returns (nil, nil) when the post does
// not exist.
func (db *DB) PostByID(ctx context.Context, postID string) (*models.Post, error) {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, author_id, content, tags, likes_count, comments_count,
		       shares_count, views_count, visibility, is_active, created_at
		FROM posts
		WHERE id = ?`, postID)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.ObserveDBQuery("post_by_id", start, nil)
		return nil, nil
	}
	metrics.ObserveDBQuery("post_by_id", start, err)
	if err != nil {
		return nil, fmt.Errorf("query post %s: %w", postID, err)
	}
	return post, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		p    models.Post
		tags string
		vis  string
	)
	err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &tags,
		&p.LikesCount, &p.CommentsCount, &p.SharesCount, &p.ViewsCount,
		&vis, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Visibility = models.Visibility(vis)
	if tags != "" {
		p.Tags = strings.Split(tags, ",")
	}
	return &p, nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}
