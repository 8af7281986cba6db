// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"context"

	"github.com/tomtom215/cinegraph/internal/database"
	models "github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// syncKeyword reconciles tmdb_keyword against the daily keyword export.
// Keywords are the one detail-free entity: the export lines already carry
// the name, so no per-id fetch happens and only missing ids are written.
func (m *Manager) syncKeyword(ctx context.Context) error {
	dst, err := m.store.Int64IDs(ctx, "tmdb_keyword", "id")
	if err != nil {
		return err
	}

	lines, err := m.client.ExportIDs(ctx, "keyword", m.runDate)
	if err != nil {
		return err
	}
	src := make([]int64, 0, len(lines))
	for _, line := range lines {
		src = append(src, line.ID)
	}

	toDelete, toAdd, err := guardedReconcile("keyword", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedInt64(ctx, m.store, "keyword", "tmdb_keyword", "id", toDelete); err != nil {
		return err
	}

	missing := idSet(toAdd)
	spec := database.Upsert{
		Table:           "tmdb_keyword",
		Columns:         []string{"id", "name"},
		ConflictColumns: []string{"id"},
		UpdateColumns:   []string{"name"},
	}
	var added []models.ExportLine
	for _, line := range lines {
		if _, ok := missing[line.ID]; !ok {
			continue
		}
		spec.Rows = append(spec.Rows, []any{line.ID, line.Name})
		added = append(added, line)
	}

	cfg := bulkConfig{Entity: "keyword", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	flushChunk(ctx, cfg, added, func(ctx context.Context, _ []models.ExportLine) error {
		return m.store.UpsertBatch(ctx, []database.Upsert{spec})
	})
	return nil
}
