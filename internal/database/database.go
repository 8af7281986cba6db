// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package database provides the Postgres destination accessor for the sync
// pipeline: id set reads, batch deletes, transactional bulk upserts, and the
// append-only sync log that anchors incremental passes.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
)

// DB wraps a pgx connection pool.
//
// Thread Safety: Safe for concurrent use; the pool hands out connections per
// operation.
type DB struct {
	pool *pgxpool.Pool
}

// New opens a connection pool against the configured destination and verifies
// connectivity before returning.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "cinegraph",
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Int32("max_conns", poolConfig.MaxConns).
		Msg("Connected to destination database")

	return &DB{pool: pool}, nil
}

// Close releases the pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping verifies the destination is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Pool exposes the underlying pool for integration testing hooks.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// withTx runs fn inside a transaction. Commit happens only when fn returns
// nil; every other exit path, panic included, rolls back.
func (db *DB) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// timedTx is withTx plus transaction metrics under the given operation label.
func (db *DB) timedTx(ctx context.Context, operation string, fn func(tx pgx.Tx) error) error {
	start := time.Now()
	err := db.withTx(ctx, fn)
	metrics.ObserveDBTx(operation, time.Since(start), err)
	return err
}
