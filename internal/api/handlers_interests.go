// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/crown-social/pulse/internal/database"
	"github.com/crown-social/pulse/internal/interests"
)

// interestsRequest is the POST /api/v1/analyze/user-interests payload.
type interestsRequest struct {
	UserID             string                        `json:"user_id" validate:"required"`
	InteractionHistory []interests.InteractionRecord `json:"interaction_history" validate:"dive"`
}

// AnalyzeUserInterests handles POST /api/v1/analyze/user-interests.
// It extracts interests from the submitted interaction history and persists
// the analysis to the user's profile.
func (h *Handler) AnalyzeUserInterests(w http.ResponseWriter, r *http.Request) {
	var req interestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request: "+err.Error(), nil)
		return
	}

	analysis := interests.Analyze(req.UserID, req.InteractionHistory)

	err := h.store.UpsertUserProfile(r.Context(), &database.UserProfile{
		UserID:              analysis.UserID,
		Interests:           analysis.Interests,
		InteractionPatterns: analysis.InteractionPatterns,
		AnalyzedPosts:       len(req.InteractionHistory),
		LastAnalysis:        analysis.AnalyzedAt,
	})
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Failed to persist interest analysis", err)
		return
	}

	respondData(w, http.StatusOK, analysis)
}
