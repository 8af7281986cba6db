// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/cinegraph/internal/metrics"
)

// syncLogTable is append-only: one row per entity pass, success or failure.
// The max successful date per entity is the incremental-sync watermark.
const syncLogTable = "tmdb_update_logs"

// EnsureSyncLog creates the sync log table when it does not exist yet. The
// destination entity tables are owned by the consuming application; only the
// pipeline's own bookkeeping table is created here.
func (db *DB) EnsureSyncLog(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS ` + pgIdent(syncLogTable) + ` (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		"date" DATE NOT NULL,
		"type" TEXT NOT NULL,
		success BOOLEAN NOT NULL
	)`
	if _, err := db.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure sync log table: %w", err)
	}
	return nil
}

// RecordRun appends one sync log row for an entity pass.
func (db *DB) RecordRun(ctx context.Context, entity string, at time.Time, success bool) error {
	query := `INSERT INTO ` + pgIdent(syncLogTable) + ` ("date", "type", success) VALUES ($1, $2, $3)`

	start := time.Now()
	_, err := db.pool.Exec(ctx, query, at, entity, success)
	metrics.ObserveDBTx("sync_log", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to record %s run: %w", entity, err)
	}
	return nil
}

// LastSuccessfulRun returns the date of the most recent successful pass for
// an entity. ErrNoWatermark when no successful pass was ever recorded.
func (db *DB) LastSuccessfulRun(ctx context.Context, entity string) (time.Time, error) {
	query := `SELECT MAX("date") FROM ` + pgIdent(syncLogTable) + ` WHERE "type" = $1 AND success`

	start := time.Now()
	var at *time.Time
	err := db.pool.QueryRow(ctx, query, entity).Scan(&at)
	metrics.ObserveDBTx("sync_log", time.Since(start), err)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoWatermark, entity)
	case err != nil:
		return time.Time{}, fmt.Errorf("failed to read %s watermark: %w", entity, err)
	case at == nil:
		// MAX over zero rows yields NULL, not ErrNoRows.
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoWatermark, entity)
	}
	return *at, nil
}
