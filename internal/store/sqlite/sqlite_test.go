package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"yelpcamp/internal/db"
	"yelpcamp/internal/store"
	"yelpcamp/internal/store/sqlite"
	"yelpcamp/internal/store/storetest"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	s := sqlite.New(conn)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newMemoryStore(t)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Ping(context.Background()))
}
