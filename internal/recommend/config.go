// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all tuning constants for the recommendation engine.
// Every scoring weight and bound lives here as a named field so the ranking
// policy is a single auditable surface rather than inline literals.
type Config struct {
	// Blend defines how similarity and engagement combine into the final score.
	Blend BlendWeights `json:"blend"`

	// Engagement defines the bounded popularity score.
	Engagement EngagementWeights `json:"engagement"`

	// Trending defines the fallback ranking weights.
	Trending TrendingWeights `json:"trending"`

	// Vectorizer contains TF-IDF parameters.
	Vectorizer VectorizerConfig `json:"vectorizer"`

	// Limits contains operational bounds.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result-cache parameters.
	Cache CacheConfig `json:"cache"`
}

// BlendWeights combines similarity and engagement into one ranking key.
// final = Similarity*sim + Engagement*eng. Weights must sum to 1 so the
// blended score stays in [0, 1].
type BlendWeights struct {
	Similarity float64 `json:"similarity"`
	Engagement float64 `json:"engagement"`
}

// EngagementWeights maps raw counters to a bounded popularity score:
// min((Likes*L + Comments*C + Shares*S)/Divisor, 1).
// The divisor is a fixed normalization constant, not derived from pool
// statistics.
type EngagementWeights struct {
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Shares   float64 `json:"shares"`
	Divisor  float64 `json:"divisor"`
}

// TrendingWeights define the engagement-only fallback score:
// Likes*L + Comments*C + Shares*S, unbounded.
type TrendingWeights struct {
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Shares   float64 `json:"shares"`
}

// VectorizerConfig contains TF-IDF parameters.
type VectorizerConfig struct {
	// MaxFeatures caps the vocabulary at the N most frequent terms.
	MaxFeatures int `json:"max_features"`
}

// LimitsConfig contains operational bounds.
type LimitsConfig struct {
	// MaxCandidates bounds the candidate pool fetched per request.
	MaxCandidates int `json:"max_candidates"`

	// MaxInteractions bounds the interaction history fetched per request.
	MaxInteractions int `json:"max_interactions"`

	// DefaultLimit is the result size when the request does not specify one.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the requested result size.
	MaxLimit int `json:"max_limit"`
}

// CacheConfig contains result-cache parameters.
type CacheConfig struct {
	// Enabled toggles the cache write after each computation.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry expiry.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Blend: BlendWeights{
			Similarity: 0.7,
			Engagement: 0.3,
		},
		Engagement: EngagementWeights{
			Likes:    0.3,
			Comments: 0.4,
			Shares:   0.3,
			Divisor:  100,
		},
		Trending: TrendingWeights{
			Likes:    1,
			Comments: 2,
			Shares:   3,
		},
		Vectorizer: VectorizerConfig{
			MaxFeatures: 1000,
		},
		Limits: LimitsConfig{
			MaxCandidates:   1000,
			MaxInteractions: 100,
			DefaultLimit:    10,
			MaxLimit:        100,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1800 * time.Second,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Blend.Similarity < 0 || c.Blend.Engagement < 0 {
		return fmt.Errorf("blend weights must be non-negative")
	}
	sum := c.Blend.Similarity + c.Blend.Engagement
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("blend weights must sum to 1.0, got %f", sum)
	}
	if c.Engagement.Likes < 0 || c.Engagement.Comments < 0 || c.Engagement.Shares < 0 {
		return fmt.Errorf("engagement weights must be non-negative")
	}
	if c.Engagement.Divisor <= 0 {
		return fmt.Errorf("engagement divisor must be positive, got %f", c.Engagement.Divisor)
	}
	if c.Trending.Likes < 0 || c.Trending.Comments < 0 || c.Trending.Shares < 0 {
		return fmt.Errorf("trending weights must be non-negative")
	}
	if c.Vectorizer.MaxFeatures <= 0 {
		return fmt.Errorf("vectorizer max_features must be positive, got %d", c.Vectorizer.MaxFeatures)
	}
	if c.Limits.MaxCandidates <= 0 {
		return fmt.Errorf("limits max_candidates must be positive, got %d", c.Limits.MaxCandidates)
	}
	if c.Limits.MaxInteractions <= 0 {
		return fmt.Errorf("limits max_interactions must be positive, got %d", c.Limits.MaxInteractions)
	}
	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits max_limit (%d) must be >= default_limit (%d)", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive when cache is enabled, got %s", c.Cache.TTL)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		// Config contains only plain values; marshal cannot fail.
		panic(fmt.Sprintf("clone config: %v", err))
	}
	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		panic(fmt.Sprintf("clone config: %v", err))
	}
	return clone
}
