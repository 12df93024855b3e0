// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/crown-social/pulse/internal/database"
	"github.com/crown-social/pulse/internal/models"
	"github.com/crown-social/pulse/internal/recommend"
)

type fakeRecommender struct {
	result  *recommend.Result
	err     error
	lastReq recommend.Request
	calls   int
}

func (f *fakeRecommender) Recommend(_ context.Context, req recommend.Request) (*recommend.Result, error) {
	f.lastReq = req
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStore struct {
	pingErr      error
	profile      *database.UserProfile
	upsertErr    error
	summary      *database.EngagementSummary
	analyticsErr error
	lastDays     int
}

func (f *fakeStore) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeStore) UpsertUserProfile(_ context.Context, profile *database.UserProfile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.profile = profile
	return nil
}

func (f *fakeStore) EngagementAnalytics(_ context.Context, userID string, days int) (*database.EngagementSummary, error) {
	f.lastDays = days
	if f.analyticsErr != nil {
		return nil, f.analyticsErr
	}
	return f.summary, nil
}

type fakeResultCache struct {
	entry *recommend.CachedRecommendations
	err   error
}

func (f *fakeResultCache) GetRecommendations(_ context.Context, _ string) (*recommend.CachedRecommendations, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entry, nil
}

func newTestRouter(engine Recommender, store Store, cache ResultCache) http.Handler {
	return NewRouter(NewHandler(engine, store, cache), RouterConfig{})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response envelope: %v (body %s)", err, rec.Body.String())
	}
	return rec, &envelope
}

func TestRecommendPosts(t *testing.T) {
	engine := &fakeRecommender{result: &recommend.Result{
		Recommendations: []string{"p1", "p2"},
		Algorithm:       recommend.AlgorithmContentBased,
		Count:           2,
		UserLikedItems:  3,
	}}
	router := newTestRouter(engine, &fakeStore{}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
		map[string]any{"user_id": "u1", "limit": 2})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q, want success", envelope.Status)
	}

	data, _ := json.Marshal(envelope.Data)
	var payload recommendResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Count != 2 || len(payload.Recommendations) != 2 {
		t.Errorf("payload = %+v, want 2 recommendations", payload)
	}
	if payload.Algorithm != string(recommend.AlgorithmContentBased) {
		t.Errorf("algorithm = %q, want %q", payload.Algorithm, recommend.AlgorithmContentBased)
	}
	if payload.UserLikedItems != 3 {
		t.Errorf("user_liked_items = %d, want 3", payload.UserLikedItems)
	}

	if !engine.lastReq.ExcludeSeen {
		t.Error("exclude_seen should default to true when omitted")
	}
	if engine.lastReq.Limit != 2 {
		t.Errorf("engine received limit %d, want 2", engine.lastReq.Limit)
	}
}

func TestRecommendPostsExcludeSeenFalse(t *testing.T) {
	engine := &fakeRecommender{result: &recommend.Result{Recommendations: []string{}, Algorithm: recommend.AlgorithmFallback}}
	router := newTestRouter(engine, &fakeStore{}, nil)

	doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
		map[string]any{"user_id": "u1", "exclude_seen": false})

	if engine.lastReq.ExcludeSeen {
		t.Error("explicit exclude_seen=false must reach the engine")
	}
}

func TestRecommendPostsValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing user_id", map[string]any{"limit": 5}},
		{"limit too large", map[string]any{"user_id": "u1", "limit": 500}},
		{"limit negative", map[string]any{"user_id": "u1", "limit": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeRecommender{}
			router := newTestRouter(engine, &fakeStore{}, nil)

			rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
			}
			if engine.calls != 0 {
				t.Error("engine should not run for invalid requests")
			}
		})
	}
}

func TestRecommendPostsInvalidJSON(t *testing.T) {
	router := newTestRouter(&fakeRecommender{}, &fakeStore{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend/posts", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendPostsErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "source unavailable",
			err:        &recommend.UnavailableError{Source: "candidate source", Err: errors.New("down")},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SERVICE_UNAVAILABLE",
		},
		{
			name:       "computation failure",
			err:        &recommend.ComputationError{Stage: "vectorize", Err: errors.New("empty vocabulary")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeRecommender{err: tt.err}, &fakeStore{}, nil)

			rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
				map[string]any{"user_id": "u1"})
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if envelope.Error == nil || envelope.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", envelope.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendPostsCacheHit(t *testing.T) {
	engine := &fakeRecommender{}
	cache := &fakeResultCache{entry: &recommend.CachedRecommendations{
		Recommendations: []string{"c1", "c2", "c3"},
		Algorithm:       recommend.AlgorithmContentBased,
		UserLikedItems:  2,
		ExcludeSeen:     true,
	}}
	router := newTestRouter(engine, &fakeStore{}, cache)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
		map[string]any{"user_id": "u1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !envelope.Metadata.Cached {
		t.Error("metadata.cached should be true for a cache hit")
	}
	if engine.calls != 0 {
		t.Error("engine should not run on a cache hit")
	}

	data, _ := json.Marshal(envelope.Data)
	var payload recommendResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Count != 3 {
		t.Errorf("count = %d, want 3 from cache", payload.Count)
	}
	if payload.UserLikedItems != 2 {
		t.Errorf("user_liked_items = %d, want 2 from cache", payload.UserLikedItems)
	}
}

func TestRecommendPostsCacheHitHonorsLimit(t *testing.T) {
	engine := &fakeRecommender{}
	cache := &fakeResultCache{entry: &recommend.CachedRecommendations{
		Recommendations: []string{"c1", "c2", "c3"},
		Algorithm:       recommend.AlgorithmTrending,
		ExcludeSeen:     true,
	}}
	router := newTestRouter(engine, &fakeStore{}, cache)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
		map[string]any{"user_id": "u1", "limit": 1})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !envelope.Metadata.Cached {
		t.Error("metadata.cached should be true for a cache hit")
	}

	data, _ := json.Marshal(envelope.Data)
	var payload recommendResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Recommendations) != 1 || payload.Count != 1 {
		t.Errorf("payload = %+v, want the cached list truncated to limit 1", payload)
	}
	if payload.Recommendations[0] != "c1" {
		t.Errorf("recommendations = %v, want the highest-ranked cached id first", payload.Recommendations)
	}
}

func TestRecommendPostsCacheExcludeSeenMismatch(t *testing.T) {
	engine := &fakeRecommender{result: &recommend.Result{
		Recommendations: []string{"p1"},
		Algorithm:       recommend.AlgorithmTrending,
		Count:           1,
	}}
	cache := &fakeResultCache{entry: &recommend.CachedRecommendations{
		Recommendations: []string{"c1", "c2"},
		Algorithm:       recommend.AlgorithmTrending,
		ExcludeSeen:     false,
	}}
	router := newTestRouter(engine, &fakeStore{}, cache)

	// The request defaults to exclude_seen=true; the cached entry was
	// computed without seen exclusion and must not be replayed.
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
		map[string]any{"user_id": "u1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if envelope.Metadata.Cached {
		t.Error("a cached entry with a different exclude_seen setting must not be served")
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1 fresh computation", engine.calls)
	}
}

func TestRecommendPostsCacheMissComputes(t *testing.T) {
	engine := &fakeRecommender{result: &recommend.Result{Recommendations: []string{"p1"}, Algorithm: recommend.AlgorithmTrending, Count: 1}}
	cache := &fakeResultCache{err: errors.New("not found")}
	router := newTestRouter(engine, &fakeStore{}, cache)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/recommend/posts",
		map[string]any{"user_id": "u1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if envelope.Metadata.Cached {
		t.Error("metadata.cached should be false for a fresh computation")
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}
}

func TestAnalyzeUserInterests(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(&fakeRecommender{}, store, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/analyze/user-interests",
		map[string]any{
			"user_id": "u1",
			"interaction_history": []map[string]any{
				{"type": "like", "content": "mountain hiking adventures"},
				{"type": "comment"},
			},
		})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q, want success", envelope.Status)
	}

	if store.profile == nil {
		t.Fatal("analysis was not persisted")
	}
	if store.profile.UserID != "u1" {
		t.Errorf("persisted user = %q, want u1", store.profile.UserID)
	}
	if store.profile.InteractionPatterns["like"] != 1 || store.profile.InteractionPatterns["comment"] != 1 {
		t.Errorf("persisted patterns = %v", store.profile.InteractionPatterns)
	}
	if len(store.profile.Interests) == 0 {
		t.Error("persisted interests should not be empty")
	}
}

func TestAnalyzeUserInterestsValidation(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(&fakeRecommender{}, store, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/analyze/user-interests",
		map[string]any{"interaction_history": []map[string]any{}})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}
}

func TestAnalyzeUserInterestsStoreFailure(t *testing.T) {
	store := &fakeStore{upsertErr: errors.New("db down")}
	router := newTestRouter(&fakeRecommender{}, store, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/analyze/user-interests",
		map[string]any{"user_id": "u1", "interaction_history": []map[string]any{{"type": "like"}}})

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "SERVICE_UNAVAILABLE" {
		t.Errorf("error = %+v, want SERVICE_UNAVAILABLE", envelope.Error)
	}
}

func TestEngagementAnalytics(t *testing.T) {
	store := &fakeStore{summary: &database.EngagementSummary{
		UserID: "u1", PeriodDays: 7, TotalPosts: 3, TotalLikes: 12,
		AvgEngagementPerPost: 4,
		DailyEngagement:      map[string]int{"2026-08-20": 12},
	}}
	router := newTestRouter(&fakeRecommender{}, store, nil)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/analytics/engagement/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if store.lastDays != 7 {
		t.Errorf("default days = %d, want 7", store.lastDays)
	}

	data, _ := json.Marshal(envelope.Data)
	var summary database.EngagementSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalPosts != 3 || summary.TotalLikes != 12 {
		t.Errorf("summary = %+v, want 3 posts and 12 likes", summary)
	}

	doJSON(t, router, http.MethodGet, "/api/v1/analytics/engagement/u1?days=30", nil)
	if store.lastDays != 30 {
		t.Errorf("days = %d, want 30", store.lastDays)
	}
}

func TestEngagementAnalyticsValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"non-numeric days", "/api/v1/analytics/engagement/u1?days=soon"},
		{"zero days", "/api/v1/analytics/engagement/u1?days=0"},
		{"days too large", "/api/v1/analytics/engagement/u1?days=9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeRecommender{}, &fakeStore{}, nil)
			rec, _ := doJSON(t, router, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestEngagementAnalyticsStoreFailure(t *testing.T) {
	store := &fakeStore{analyticsErr: errors.New("db down")}
	router := newTestRouter(&fakeRecommender{}, store, nil)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/analytics/engagement/u1", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := newTestRouter(&fakeRecommender{}, &fakeStore{}, nil)

		rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("health status = %d, want 200", rec.Code)
		}
		data, _ := json.Marshal(envelope.Data)
		var status healthStatus
		if err := json.Unmarshal(data, &status); err != nil {
			t.Fatalf("decode health payload: %v", err)
		}
		if status.Status != "healthy" || status.Database != "connected" {
			t.Errorf("health = %+v, want healthy/connected", status)
		}

		rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/health/live", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("live status = %d, want 200", rec.Code)
		}
		rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/health/ready", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("ready status = %d, want 200", rec.Code)
		}
	})

	t.Run("store down", func(t *testing.T) {
		router := newTestRouter(&fakeRecommender{}, &fakeStore{pingErr: errors.New("closed")}, nil)

		rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("health status = %d, want 200 even when degraded", rec.Code)
		}
		data, _ := json.Marshal(envelope.Data)
		var status healthStatus
		if err := json.Unmarshal(data, &status); err != nil {
			t.Fatalf("decode health payload: %v", err)
		}
		if status.Status != "degraded" {
			t.Errorf("health = %+v, want degraded", status)
		}

		rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/health/ready", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("ready status = %d, want 503", rec.Code)
		}
	})
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(&fakeRecommender{}, &fakeStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "given-id" {
		t.Errorf("X-Request-ID = %q, want the caller-provided value", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeRecommender{}, &fakeStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics body should not be empty")
	}
}
