// Package store opens the relational store and loads prepared entities into it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nonsonwune/mcm_db/migrations"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite3"
)

const pingTimeout = 12 * time.Second

// Config selects the driver and connection string.
type Config struct {
	Driver string
	DSN    string
}

// Open connects to the store, pings it and initializes the schema.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverPgx, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("error opening %s store: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// Foreign keys are enabled per connection; keep a single one.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			db.Close()
			return nil, fmt.Errorf("error enabling foreign keys: %w", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to store: %w", err)
	}

	if err := migrations.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
