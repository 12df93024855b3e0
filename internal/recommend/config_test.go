// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default",
			mutate: func(c *Config) {},
		},
		{
			name: "blend weights do not sum to one",
			mutate: func(c *Config) {
				c.Blend.Similarity = 0.5
				c.Blend.Engagement = 0.3
			},
			wantErr: true,
		},
		{
			name: "negative blend weight",
			mutate: func(c *Config) {
				c.Blend.Similarity = -0.2
				c.Blend.Engagement = 1.2
			},
			wantErr: true,
		},
		{
			name: "zero engagement divisor",
			mutate: func(c *Config) {
				c.Engagement.Divisor = 0
			},
			wantErr: true,
		},
		{
			name: "negative trending weight",
			mutate: func(c *Config) {
				c.Trending.Shares = -1
			},
			wantErr: true,
		},
		{
			name: "zero max features",
			mutate: func(c *Config) {
				c.Vectorizer.MaxFeatures = 0
			},
			wantErr: true,
		},
		{
			name: "max limit below default limit",
			mutate: func(c *Config) {
				c.Limits.DefaultLimit = 50
				c.Limits.MaxLimit = 10
			},
			wantErr: true,
		},
		{
			name: "cache enabled with zero ttl",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.TTL = 0
			},
			wantErr: true,
		},
		{
			name: "cache disabled ignores ttl",
			mutate: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.TTL = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	orig := DefaultConfig()
	clone := orig.Clone()

	clone.Blend.Similarity = 0.9
	clone.Cache.TTL = time.Minute

	if orig.Blend.Similarity != 0.7 {
		t.Errorf("mutating clone changed original blend weight: %f", orig.Blend.Similarity)
	}
	if orig.Cache.TTL != 1800*time.Second {
		t.Errorf("mutating clone changed original cache TTL: %s", orig.Cache.TTL)
	}
}
