package sqlite

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		price         REAL NOT NULL CHECK (price >= 0),
		description   TEXT NOT NULL,
		location      TEXT NOT NULL,
		place_name    TEXT NOT NULL DEFAULT '',
		geometry_type TEXT NOT NULL DEFAULT 'Point',
		longitude     REAL NOT NULL,
		latitude      REAL NOT NULL,
		images        TEXT NOT NULL DEFAULT '[]',
		author_id     TEXT NOT NULL REFERENCES users(id),
		review_ids    TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS listings_created_at_idx ON listings (created_at)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         TEXT PRIMARY KEY,
		listing_id TEXT NOT NULL,
		author_id  TEXT NOT NULL REFERENCES users(id),
		body       TEXT NOT NULL CHECK (body <> ''),
		rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_listing_id_idx ON reviews (listing_id)`,
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite.Migrate: %w", err)
		}
	}
	return nil
}
