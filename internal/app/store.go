package app

import (
	"context"
	"fmt"

	"yelpcamp/internal/config"
	"yelpcamp/internal/db"
	"yelpcamp/internal/store"
	"yelpcamp/internal/store/postgres"
	"yelpcamp/internal/store/sqlite"
)

// OpenStore connects the backend named by cfg.DatabaseDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return sqlite.New(conn), nil
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgres.New(pool), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}
