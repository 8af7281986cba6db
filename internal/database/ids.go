// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinegraph/internal/metrics"
)

// StringIDs returns every value of a text identifier column.
// An empty table returns ErrEmptyTable.
func (db *DB) StringIDs(ctx context.Context, table, column string) ([]string, error) {
	return readIDs[string](ctx, db, table, column)
}

// Int64IDs returns every value of a bigint identifier column.
// An empty table returns ErrEmptyTable.
func (db *DB) Int64IDs(ctx context.Context, table, column string) ([]int64, error) {
	return readIDs[int64](ctx, db, table, column)
}

func readIDs[T string | int64](ctx context.Context, db *DB, table, column string) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", pgIdent(column), pgIdent(table))

	start := time.Now()
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		metrics.ObserveDBTx("read_ids", time.Since(start), err)
		return nil, fmt.Errorf("failed to read ids from %s: %w", table, err)
	}
	defer rows.Close()

	var ids []T
	for rows.Next() {
		var id T
		if err := rows.Scan(&id); err != nil {
			metrics.ObserveDBTx("read_ids", time.Since(start), err)
			return nil, fmt.Errorf("failed to scan id from %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveDBTx("read_ids", time.Since(start), err)
		return nil, fmt.Errorf("failed to read ids from %s: %w", table, err)
	}
	metrics.ObserveDBTx("read_ids", time.Since(start), nil)

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, table)
	}
	return ids, nil
}

// DeleteStringIDs removes every row whose identifier column matches one of
// ids. A nil or empty slice is a no-op.
func (db *DB) DeleteStringIDs(ctx context.Context, table, column string, ids []string) (int64, error) {
	return deleteIDs(ctx, db, table, column, ids)
}

// DeleteInt64IDs removes every row whose identifier column matches one of
// ids. A nil or empty slice is a no-op.
func (db *DB) DeleteInt64IDs(ctx context.Context, table, column string, ids []int64) (int64, error) {
	return deleteIDs(ctx, db, table, column, ids)
}

func deleteIDs[T string | int64](ctx context.Context, db *DB, table, column string, ids []T) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", pgIdent(table), pgIdent(column))

	start := time.Now()
	tag, err := db.pool.Exec(ctx, query, ids)
	metrics.ObserveDBTx("delete", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}
