// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the router's middleware stack.
type RouterConfig struct {
	// RateLimitRequests is the per-IP request budget per window.
	// Zero disables rate limiting.
	RateLimitRequests int

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration
}

// NewRouter builds the HTTP routing tree.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(prometheusMetrics())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
			r.Post("/recommend/posts", h.RecommendPosts)
			r.Post("/analyze/user-interests", h.AnalyzeUserInterests)
			r.Get("/analytics/engagement/{userID}", h.EngagementAnalytics)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
