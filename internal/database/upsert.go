// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/cinegraph/internal/logging"
)

// Upsert describes one table's worth of rows inside a batch flush.
//
// Columns names every inserted column, in row value order. ConflictColumns
// is the unique key the insert may collide on. UpdateColumns names the
// columns rewritten from the incoming row on conflict; leave it empty for
// ON CONFLICT DO NOTHING.
type Upsert struct {
	Table           string
	Columns         []string
	ConflictColumns []string
	UpdateColumns   []string
	Rows            [][]any
}

// pgIdent quotes a Postgres identifier.
func pgIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func pgIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pgIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// buildUpsertSQL renders the INSERT ... ON CONFLICT statement for one spec.
func buildUpsertSQL(u Upsert) string {
	placeholders := make([]string, len(u.Columns))
	for i := range u.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
		pgIdent(u.Table), pgIdents(u.Columns), strings.Join(placeholders, ", "))

	if len(u.ConflictColumns) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, " ON CONFLICT (%s)", pgIdents(u.ConflictColumns))
	if len(u.UpdateColumns) == 0 {
		b.WriteString(" DO NOTHING")
		return b.String()
	}

	sets := make([]string, len(u.UpdateColumns))
	for i, col := range u.UpdateColumns {
		sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", pgIdent(col), pgIdent(col))
	}
	fmt.Fprintf(&b, " DO UPDATE SET %s", strings.Join(sets, ", "))
	return b.String()
}

// validateUpsert catches malformed specs before they reach the wire.
func validateUpsert(u Upsert) error {
	if u.Table == "" {
		return fmt.Errorf("upsert spec has no table")
	}
	if len(u.Columns) == 0 {
		return fmt.Errorf("upsert spec for %s has no columns", u.Table)
	}
	for i, row := range u.Rows {
		if len(row) != len(u.Columns) {
			return fmt.Errorf("upsert spec for %s: row %d has %d values, want %d",
				u.Table, i, len(row), len(u.Columns))
		}
	}
	return nil
}

// UpsertBatch applies every spec inside one transaction, in order, so a
// record's parent row and its association rows land atomically. Any error
// rolls the whole flush back.
func (db *DB) UpsertBatch(ctx context.Context, specs []Upsert) error {
	total := 0
	for _, u := range specs {
		if err := validateUpsert(u); err != nil {
			return err
		}
		total += len(u.Rows)
	}
	if total == 0 {
		return nil
	}

	err := db.timedTx(ctx, "upsert", func(tx pgx.Tx) error {
		for _, u := range specs {
			if len(u.Rows) == 0 {
				continue
			}
			sql := buildUpsertSQL(u)
			batch := &pgx.Batch{}
			for _, row := range u.Rows {
				batch.Queue(sql, row...)
			}
			br := tx.SendBatch(ctx, batch)
			for range u.Rows {
				if _, err := br.Exec(); err != nil {
					_ = br.Close()
					return fmt.Errorf("failed to upsert into %s: %w", u.Table, err)
				}
			}
			if err := br.Close(); err != nil {
				return fmt.Errorf("failed to upsert into %s: %w", u.Table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Debug().
		Int("tables", len(specs)).
		Int("rows", total).
		Msg("Flushed upsert batch")
	return nil
}
