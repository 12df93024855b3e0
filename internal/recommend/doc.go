// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package recommend implements the personalized post-recommendation engine.
//
// Given a user and a pool of candidate posts, the engine produces a ranked
// subset blending content affinity with engagement popularity:
//
//  1. Fetch active candidates (newest first, bounded) and the user's recent
//     interactions (newest first, bounded).
//  2. Build a content profile from liked posts and a seen-set from all
//     interactions.
//  3. If the profile is empty, fall back to engagement-weighted trending
//     ranking. Otherwise vectorize liked content and candidates in a shared
//     TF-IDF space, score candidates by cosine similarity against the mean
//     profile vector, and blend with a bounded engagement score.
//  4. Filter previously seen posts when requested, rank, take the top K,
//     and write the result to the cache (best effort).
//
// The engine holds no cross-request mutable state; concurrent requests are
// independent. Collaborators (candidate source, interaction source, cache)
// are injected interfaces so tests can substitute fakes.
package recommend
