// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package models

import "time"

// InteractionType classifies a user-post interaction event.
type InteractionType string

const (
	// InteractionLike is an explicit like. Likes are the only interaction
	// type that contributes to the content profile.
	InteractionLike InteractionType = "like"

	// InteractionComment is a comment on a post.
	InteractionComment InteractionType = "comment"

	// InteractionShare is a share/repost.
	InteractionShare InteractionType = "share"

	// InteractionView is a passive view.
	InteractionView InteractionType = "view"
)

// Interaction is a read-only record of a user acting on a post.
// Interactions are created by the feed service; Pulse only reads them.
type Interaction struct {
	// UserID identifies the acting user.
	UserID string `json:"user_id"`

	// PostID identifies the post acted upon.
	PostID string `json:"post_id"`

	// Type is the kind of interaction (like, comment, share, view).
	Type InteractionType `json:"type"`

	// CreatedAt is when the interaction occurred.
	CreatedAt time.Time `json:"created_at"`
}
