// internal/database/db.go

// Package database holds the optional Postgres layer. The server only uses
// it to snapshot player ratings for matchmaking; it is skipped entirely when
// DATABASE_URL is unset.
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the global connection pool, set by Connect.
var DB *pgxpool.Pool

// Connect opens the pool described by DATABASE_URL and verifies it with a
// short ping.
func Connect(ctx context.Context) error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("unable to parse pgx config: %w", err)
	}

	DB, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := DB.Ping(pingCtx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}
	return nil
}

// Close releases the pool. Safe to call when Connect was never run.
func Close() {
	if DB != nil {
		DB.Close()
	}
}
