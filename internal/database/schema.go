// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package database

// Schema notes:
//   - posts.tags stores a comma-joined tag list; tags never contain commas.
//   - user_profiles.interests and interaction_patterns store JSON documents.
//   - Counters live on the post row and are updated alongside interactions.
const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id             VARCHAR PRIMARY KEY,
    author_id      VARCHAR NOT NULL,
    content        TEXT NOT NULL,
    tags           TEXT NOT NULL DEFAULT '',
    likes_count    INTEGER NOT NULL DEFAULT 0,
    comments_count INTEGER NOT NULL DEFAULT 0,
    shares_count   INTEGER NOT NULL DEFAULT 0,
    views_count    INTEGER NOT NULL DEFAULT 0,
    visibility     VARCHAR NOT NULL DEFAULT 'public',
    is_active      BOOLEAN NOT NULL DEFAULT TRUE,
    created_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS interactions (
    id         VARCHAR PRIMARY KEY,
    user_id    VARCHAR NOT NULL,
    post_id    VARCHAR NOT NULL,
    type       VARCHAR NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions (user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_posts_active ON posts (is_active, created_at);

CREATE TABLE IF NOT EXISTS user_profiles (
    user_id              VARCHAR PRIMARY KEY,
    interests            TEXT NOT NULL DEFAULT '[]',
    interaction_patterns TEXT NOT NULL DEFAULT '{}',
    analyzed_posts       INTEGER NOT NULL DEFAULT 0,
    last_analysis        TIMESTAMP NOT NULL
);
`

// initSchema creates all tables and indexes if they do not exist.
func (db *DB) initSchema() error {
	_, err := db.conn.Exec(schema)
	return err
}
