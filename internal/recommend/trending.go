// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import "github.com/crown-social/pulse/internal/models"

// scoreTrending scores every candidate by raw weighted engagement,
// preserving candidate order so that the stable ranking sort breaks ties
// by recency (candidates arrive newest first).
func scoreTrending(posts []models.Post, w TrendingWeights) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(posts))
	for i := range posts {
		scored = append(scored, ScoredCandidate{
			PostID: posts[i].ID,
			Score:  trendingScore(&posts[i], w),
		})
	}
	return scored
}

// trendingScore is the engagement-only fallback score: likes + 2*comments
// + 3*shares under the default weights. Views do not contribute.
func trendingScore(p *models.Post, w TrendingWeights) float64 {
	return w.Likes*float64(p.LikesCount) +
		w.Comments*float64(p.CommentsCount) +
		w.Shares*float64(p.SharesCount)
}
