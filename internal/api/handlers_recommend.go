// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/crown-social/pulse/internal/logging"
	"github.com/crown-social/pulse/internal/metrics"
	"github.com/crown-social/pulse/internal/models"
	"github.com/crown-social/pulse/internal/recommend"
)

// recommendRequest is the POST /api/v1/recommend/posts payload.
type recommendRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`

	// ExcludeSeen defaults to true when omitted.
	ExcludeSeen *bool `json:"exclude_seen"`
}

// recommendResponse is the recommendation payload inside the envelope.
type recommendResponse struct {
	UserID          string   `json:"user_id"`
	Recommendations []string `json:"recommendations"`
	Algorithm       string   `json:"algorithm"`
	Count           int      `json:"count"`
	UserLikedItems  int      `json:"user_liked_items,omitempty"`
}

// RecommendPosts handles POST /api/v1/recommend/posts.
func (h *Handler) RecommendPosts(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request: "+err.Error(), nil)
		return
	}

	ctx := r.Context()

	excludeSeen := true
	if req.ExcludeSeen != nil {
		excludeSeen = *req.ExcludeSeen
	}
	limit := req.Limit
	if limit <= 0 {
		limit = h.limits.DefaultLimit
	}

	// Serve a live cached entry when one was computed under the same
	// seen-exclusion setting, truncated to this request's limit. A miss,
	// failure, or mismatch falls through to a fresh computation.
	if h.cache != nil {
		if entry, err := h.cache.GetRecommendations(ctx, req.UserID); err == nil && entry != nil && entry.ExcludeSeen == excludeSeen {
			ids := entry.Recommendations
			if len(ids) > limit {
				ids = ids[:limit]
			}
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data: recommendResponse{
					UserID:          req.UserID,
					Recommendations: ids,
					Algorithm:       string(entry.Algorithm),
					Count:           len(ids),
					UserLikedItems:  entry.UserLikedItems,
				},
				Metadata: models.Metadata{
					Timestamp: time.Now().UTC(),
					Cached:    true,
				},
			})
			return
		}
	}

	start := time.Now()
	result, err := h.engine.Recommend(ctx, recommend.Request{
		UserID:      req.UserID,
		Limit:       req.Limit,
		ExcludeSeen: excludeSeen,
		RequestID:   logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		respondRecommendError(w, err)
		return
	}

	metrics.RecommendationDuration.WithLabelValues(string(result.Algorithm)).Observe(time.Since(start).Seconds())
	metrics.RecommendationRequests.WithLabelValues(string(result.Algorithm), "ok").Inc()

	respondData(w, http.StatusOK, recommendResponse{
		UserID:          req.UserID,
		Recommendations: result.Recommendations,
		Algorithm:       string(result.Algorithm),
		Count:           result.Count,
		UserLikedItems:  result.UserLikedItems,
	})
}

// respondRecommendError maps engine errors onto HTTP statuses: source
// outages are 503, computation faults and anything unexpected are 500.
func respondRecommendError(w http.ResponseWriter, err error) {
	switch {
	case recommend.IsUnavailable(err):
		metrics.RecommendationRequests.WithLabelValues("none", "unavailable").Inc()
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Recommendation data source unavailable", err)
	case recommend.IsComputationFailure(err):
		metrics.RecommendationRequests.WithLabelValues("none", "error").Inc()
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Recommendation computation failed", err)
	default:
		metrics.RecommendationRequests.WithLabelValues("none", "error").Inc()
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Recommendation failed", err)
	}
}
