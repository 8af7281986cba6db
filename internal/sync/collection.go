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

// collectionRecord is one collection in both locales. Valid only when both
// locale fetches succeeded.
type collectionRecord struct {
	en *models.Collection
	fr *models.Collection
}

// syncCollection reconciles tmdb_collection against the daily collection
// export, bulk-fetching details for missing ids.
func (m *Manager) syncCollection(ctx context.Context) error {
	dst, err := m.store.Int64IDs(ctx, "tmdb_collection", "id")
	if err != nil {
		return err
	}

	lines, err := m.client.ExportIDs(ctx, "collection", m.runDate)
	if err != nil {
		return err
	}
	src := make([]int64, 0, len(lines))
	for _, line := range lines {
		src = append(src, line.ID)
	}

	toDelete, toAdd, err := guardedReconcile("collection", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedInt64(ctx, m.store, "collection", "tmdb_collection", "id", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "collection", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	return bulkSync(ctx, cfg, toAdd, m.fetchCollection, func(ctx context.Context, records []collectionRecord) error {
		return m.store.UpsertBatch(ctx, collectionSpecs(records))
	})
}

func (m *Manager) fetchCollection(ctx context.Context, id int64) (collectionRecord, error) {
	en, err := m.client.Collection(ctx, id, localeEN)
	if err != nil {
		return collectionRecord{}, err
	}
	fr, err := m.client.Collection(ctx, id, localeFR)
	if err != nil {
		return collectionRecord{}, err
	}
	return collectionRecord{en: en, fr: fr}, nil
}

func collectionSpecs(records []collectionRecord) []database.Upsert {
	parent := database.Upsert{
		Table:           "tmdb_collection",
		Columns:         []string{"id", "backdrop_path"},
		ConflictColumns: []string{"id"},
	}
	translation := database.Upsert{
		Table:           "tmdb_collection_translation",
		Columns:         []string{"collection", "language", "overview", "poster_path", "name"},
		ConflictColumns: []string{"collection", "language"},
		UpdateColumns:   []string{"overview", "poster_path", "name"},
	}
	for _, rec := range records {
		parent.Rows = append(parent.Rows, []any{rec.en.ID, rec.en.BackdropPath})
		translation.Rows = append(translation.Rows,
			[]any{rec.en.ID, langEN, rec.en.Overview, rec.en.PosterPath, rec.en.Name})
	}
	for _, rec := range records {
		translation.Rows = append(translation.Rows,
			[]any{rec.fr.ID, langFR, rec.fr.Overview, rec.fr.PosterPath, rec.fr.Name})
	}
	return []database.Upsert{parent, translation}
}
