package postgres

import (
	"context"
	"fmt"
)

// Reviews carry no foreign key to listings: removing a listing's reviews is
// the services layer's job, so a missing listing must never block a delete.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_username_key UNIQUE (username)
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		price         DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		description   TEXT NOT NULL,
		location      TEXT NOT NULL,
		place_name    TEXT NOT NULL DEFAULT '',
		geometry_type TEXT NOT NULL DEFAULT 'Point',
		longitude     DOUBLE PRECISION NOT NULL,
		latitude      DOUBLE PRECISION NOT NULL,
		images        JSONB NOT NULL DEFAULT '[]'::jsonb,
		author_id     TEXT NOT NULL REFERENCES users(id),
		review_ids    TEXT[] NOT NULL DEFAULT '{}',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS listings_created_at_idx ON listings (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         TEXT PRIMARY KEY,
		listing_id TEXT NOT NULL,
		author_id  TEXT NOT NULL REFERENCES users(id),
		body       TEXT NOT NULL CHECK (body <> ''),
		rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_listing_id_idx ON reviews (listing_id)`,
}

// Migrate applies the schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres.Migrate: %w", err)
		}
	}
	return nil
}
