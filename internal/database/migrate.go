package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scrape_runs (
        id UUID PRIMARY KEY,
        query TEXT NOT NULL,
        industry TEXT NOT NULL DEFAULT '',
        area TEXT NOT NULL DEFAULT '',
        target INTEGER NOT NULL,
        include_sub_areas BOOLEAN NOT NULL DEFAULT FALSE,
        status TEXT NOT NULL,
        message TEXT NOT NULL DEFAULT '',
        processed INTEGER NOT NULL DEFAULT 0,
        found INTEGER NOT NULL DEFAULT 0,
        filtered INTEGER NOT NULL DEFAULT 0,
        duplicates INTEGER NOT NULL DEFAULT 0,
        error TEXT NOT NULL DEFAULT '',
        requested_by TEXT NOT NULL DEFAULT '',
        started_at TIMESTAMPTZ NOT NULL,
        finished_at TIMESTAMPTZ
    )`,
	`CREATE INDEX IF NOT EXISTS scrape_runs_started_at_idx ON scrape_runs (started_at DESC)`,
	`CREATE TABLE IF NOT EXISTS listings (
        run_id UUID NOT NULL REFERENCES scrape_runs (id) ON DELETE CASCADE,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        phone TEXT NOT NULL DEFAULT '',
        phone_raw TEXT NOT NULL DEFAULT '',
        phone_local TEXT NOT NULL DEFAULT '',
        phone_type TEXT NOT NULL DEFAULT '',
        phone_valid BOOLEAN NOT NULL DEFAULT FALSE,
        address TEXT NOT NULL DEFAULT '',
        website TEXT NOT NULL DEFAULT '',
        instagram TEXT NOT NULL DEFAULT '',
        facebook TEXT NOT NULL DEFAULT '',
        area TEXT NOT NULL DEFAULT '',
        industry TEXT NOT NULL DEFAULT '',
        reviews_count INTEGER,
        reviews_average DOUBLE PRECISION,
        store_shopping TEXT NOT NULL DEFAULT '',
        in_store_pickup TEXT NOT NULL DEFAULT '',
        store_delivery TEXT NOT NULL DEFAULT '',
        place_type TEXT NOT NULL DEFAULT '',
        opens_at TEXT NOT NULL DEFAULT '',
        introduction TEXT NOT NULL DEFAULT '',
        maps_url TEXT NOT NULL DEFAULT '',
        score INTEGER NOT NULL DEFAULT 0,
        score_breakdown JSONB NOT NULL DEFAULT '{}'::jsonb,
        scraped_at TIMESTAMPTZ NOT NULL,
        PRIMARY KEY (run_id, position)
    )`,
}

// Migrate creates the run and listing tables when they do not exist.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
