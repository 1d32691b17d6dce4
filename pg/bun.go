// Package pg provides PostgreSQL database connection and utility functions.
//
// It offers connection pools, Bun ORM wiring with debug and OpenTelemetry
// hooks, PostgreSQL error helpers, and a split command/query configuration
// so writes and reads can target different servers.
package pg

import (
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/forja-labs/pkg/pg/hooks"
)

// NewBunDB creates a new Bun database connection with the provided configuration.
// When cfg.SecretFile is set, credentials from the secret file override the
// inline values before connecting.
func NewBunDB(cfg Config) (*bun.DB, error) {
	if cfg.SecretFile != "" {
		if err := ApplySecret(&cfg, cfg.SecretFile); err != nil {
			return nil, errx.Wrap(err)
		}
	}

	pool, err := NewPool(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sqldb := stdlib.OpenDBFromPool(pool)

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	applyHooks(bunDB, cfg.Debug)

	return bunDB, nil
}

// NewCommandDB opens the write-side connection of a split configuration.
func NewCommandDB(cfg SplitConfig) (*bun.DB, error) {
	return NewBunDB(cfg.Command)
}

// NewQueryDB opens the read-side connection of a split configuration.
func NewQueryDB(cfg SplitConfig) (*bun.DB, error) {
	return NewBunDB(cfg.Query)
}

// applyHooks configures the Bun database with query hooks.
//
// The debug logging hook is active only when debug=true; the OpenTelemetry
// hook is always enabled.
func applyHooks(db *bun.DB, debug bool) {
	db.AddQueryHook(
		hooks.NewDebugHook(
			hooks.WithEnabled(debug),
			hooks.WithVerbose(true),
		),
	)

	db.AddQueryHook(bunotel.NewQueryHook())
}
