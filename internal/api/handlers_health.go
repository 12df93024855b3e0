// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package api

import (
	"net/http"
	"time"
)

// healthStatus is the /api/v1/health payload.
type healthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Database      string `json:"database"`
}

// Health handles GET /api/v1/health. The service reports degraded when the
// store is unreachable; recommendations still fall back in that state, so
// the endpoint stays 200.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Database:      "connected",
	}
	if err := h.store.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "disconnected"
	}
	respondData(w, http.StatusOK, status)
}

// HealthLive handles GET /api/v1/health/live. The process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires a
// reachable store.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"Store not reachable", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
