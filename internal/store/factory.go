package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// NewStoreFromConfig creates a Store for the configured driver.
// "sqlite" and "postgres" open a bun-backed SQL store and bootstrap the
// schema; "memory" creates an empty in-memory store.
func NewStoreFromConfig(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return initBunStore(ctx, bun.NewDB(sqldb, sqlitedialect.New()))
	case DriverPostgres:
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return initBunStore(ctx, bun.NewDB(sqldb, pgdialect.New()))
	default:
		return nil, fmt.Errorf("unknown store driver: %s (supported: %s, %s, %s)",
			driver, DriverSQLite, DriverPostgres, DriverMemory)
	}
}

func initBunStore(ctx context.Context, db *bun.DB) (*BunStore, error) {
	s := NewBunStore(db)
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap books table: %w", err)
	}
	return s, nil
}
