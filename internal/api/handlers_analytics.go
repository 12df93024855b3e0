// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	defaultAnalyticsDays = 7
	maxAnalyticsDays     = 365
)

// EngagementAnalytics handles GET /api/v1/analytics/engagement/{userID}.
// The optional days query parameter sets the trailing window (default 7,
// max 365).
func (h *Handler) EngagementAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing user ID", nil)
		return
	}

	days := defaultAnalyticsDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxAnalyticsDays {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"days must be an integer between 1 and 365", nil)
			return
		}
		days = parsed
	}

	summary, err := h.store.EngagementAnalytics(r.Context(), userID, days)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Failed to compute engagement analytics", err)
		return
	}

	respondData(w, http.StatusOK, summary)
}
