// Package sqlite implements store.Store on sqlx over the pure-Go SQLite driver.
// List-valued columns (images, review_ids) are stored as JSON text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"yelpcamp/internal/store"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ext is satisfied by both *sqlx.DB and *sqlx.Tx.
type ext interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type queries struct {
	db ext
}

type Store struct {
	*queries
	conn *sqlx.DB
}

var _ store.Store = (*Store)(nil)

func New(conn *sqlx.DB) *Store {
	return &Store{queries: &queries{db: conn}, conn: conn}
}

func (s *Store) InTx(ctx context.Context, fn func(q store.Queries) error) (err error) {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite.InTx: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(&queries{db: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite.InTx: commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func translate(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) && isUniqueViolation(sqlErr) {
		return fmt.Errorf("%s: %w (%s)", op, store.ErrDuplicate, sqlErr.Error())
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err *sqlite.Error) bool {
	if err.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return err.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
