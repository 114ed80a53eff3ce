package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database at path (":memory:" for a private
// in-memory database). The pool is limited to one connection so writes are
// serialized and an in-memory database is shared by every query.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to enable foreign keys: %w", err)
	}

	log.Printf("Opened SQLite database %s", path)
	return conn, nil
}
