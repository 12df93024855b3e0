// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package models defines the shared data types exchanged between the store,
// the recommendation engine, and the API layer.
package models

import "time"

// Visibility controls who can see a post.
type Visibility string

const (
	// VisibilityPublic means the post is visible to everyone.
	VisibilityPublic Visibility = "public"

	// VisibilityFriends means the post is visible to the author's friends.
	VisibilityFriends Visibility = "friends"

	// VisibilityPrivate means the post is visible only to the author.
	// Private posts are never recommendation candidates.
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// Post is a read-only snapshot of a post as stored by the post store.
// The engine never mutates posts; counters reflect the moment the snapshot
// was taken.
type Post struct {
	// ID is the opaque post identifier.
	ID string `json:"id"`

	// AuthorID identifies the user who created the post.
	AuthorID string `json:"author_id"`

	// Content is the post's textual body.
	Content string `json:"content"`

	// Tags is the set of tag strings attached to the post.
	Tags []string `json:"tags,omitempty"`

	// LikesCount is the number of likes the post has received.
	LikesCount int `json:"likes_count"`

	// CommentsCount is the number of comments on the post.
	CommentsCount int `json:"comments_count"`

	// SharesCount is the number of times the post was shared.
	SharesCount int `json:"shares_count"`

	// ViewsCount is the number of recorded views.
	ViewsCount int `json:"views_count"`

	// Visibility is one of public, friends, private.
	Visibility Visibility `json:"visibility"`

	// IsActive is false for deleted or suspended posts.
	IsActive bool `json:"is_active"`

	// CreatedAt is the post creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Eligible reports whether the post may appear in a candidate pool:
// it must be active and publicly or friends-visible.
func (p *Post) Eligible() bool {
	return p.IsActive && (p.Visibility == VisibilityPublic || p.Visibility == VisibilityFriends)
}
