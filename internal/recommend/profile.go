// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"context"

	"github.com/crown-social/pulse/internal/models"
)

// BuildProfile derives a user's content profile from their interaction
// history. Liked posts are resolved through the interaction source and
// contribute their content and tags; every interaction, whatever its type,
// marks its post as seen. A liked post that no longer resolves is skipped
// silently; a source failure aborts with an UnavailableError.
func BuildProfile(ctx context.Context, src InteractionSource, interactions []models.Interaction) (*UserProfile, error) {
	profile := &UserProfile{
		SeenIDs: make(map[string]struct{}, len(interactions)),
	}

	for _, in := range interactions {
		profile.SeenIDs[in.PostID] = struct{}{}

		if in.Type != models.InteractionLike {
			continue
		}

		post, err := src.PostByID(ctx, in.PostID)
		if err != nil {
			return nil, &UnavailableError{Source: "interaction source", Err: err}
		}
		if post == nil {
			// The liked post was deleted since the interaction was recorded.
			continue
		}

		profile.LikedContent = append(profile.LikedContent, post.Content)
		profile.TagInterests = append(profile.TagInterests, post.Tags...)
	}

	return profile, nil
}
