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

// syncLanguage reconciles tmdb_language against the configuration listing.
// The listing is not locale-qualified; the English name lands in the
// translation table under the "en" tag and the native name on the parent
// row.
func (m *Manager) syncLanguage(ctx context.Context) error {
	dst, err := m.store.StringIDs(ctx, "tmdb_language", "iso_639_1")
	if err != nil {
		return err
	}

	langs, err := m.client.Languages(ctx)
	if err != nil {
		return err
	}
	src := make([]string, 0, len(langs))
	for _, l := range langs {
		src = append(src, l.ISO6391)
	}

	toDelete, _, err := guardedReconcile("language", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedString(ctx, m.store, "language", "tmdb_language", "iso_639_1", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "language", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	flushChunk(ctx, cfg, langs, func(ctx context.Context, records []models.Language) error {
		return m.store.UpsertBatch(ctx, languageSpecs(records))
	})
	return nil
}

func languageSpecs(langs []models.Language) []database.Upsert {
	parent := database.Upsert{
		Table:           "tmdb_language",
		Columns:         []string{"iso_639_1", "name_in_native_language"},
		ConflictColumns: []string{"iso_639_1"},
		UpdateColumns:   []string{"name_in_native_language"},
	}
	translation := database.Upsert{
		Table:           "tmdb_language_translation",
		Columns:         []string{"iso_639_1", "language", "name"},
		ConflictColumns: []string{"iso_639_1", "language"},
		UpdateColumns:   []string{"name"},
	}
	for _, l := range langs {
		parent.Rows = append(parent.Rows, []any{l.ISO6391, l.Name})
		translation.Rows = append(translation.Rows, []any{l.ISO6391, langEN, l.EnglishName})
	}
	return []database.Upsert{parent, translation}
}
