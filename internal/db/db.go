// Package db persists players in PostgreSQL. The in-memory world stays
// authoritative; this package loads it at startup and saves snapshots.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing. Saves come from the autosave loop and disconnects only.
const (
	maxConns          = 4
	healthCheckPeriod = 30 * time.Second
)

// DB owns the connection pool used by PlayerRepository.
type DB struct {
	pool *pgxpool.Pool
}

// New opens a small pool and verifies the server answers.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close releases every pooled connection.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool exposes the pool for repositories.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}
