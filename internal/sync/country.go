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

// syncCountry reconciles tmdb_country against the configuration listing.
// One French-locale request yields both names: english_name is
// locale-stable and native_name carries the French form.
func (m *Manager) syncCountry(ctx context.Context) error {
	dst, err := m.store.StringIDs(ctx, "tmdb_country", "iso_3166_1")
	if err != nil {
		return err
	}

	countries, err := m.client.Countries(ctx, localeFR)
	if err != nil {
		return err
	}
	src := make([]string, 0, len(countries))
	for _, c := range countries {
		src = append(src, c.ISO31661)
	}

	toDelete, _, err := guardedReconcile("country", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedString(ctx, m.store, "country", "tmdb_country", "iso_3166_1", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "country", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	flushChunk(ctx, cfg, countries, func(ctx context.Context, records []models.Country) error {
		return m.store.UpsertBatch(ctx, countrySpecs(records))
	})
	return nil
}

func countrySpecs(countries []models.Country) []database.Upsert {
	parent := database.Upsert{
		Table:           "tmdb_country",
		Columns:         []string{"iso_3166_1"},
		ConflictColumns: []string{"iso_3166_1"},
	}
	translation := database.Upsert{
		Table:           "tmdb_country_translation",
		Columns:         []string{"iso_3166_1", "iso_639_1", "name"},
		ConflictColumns: []string{"iso_3166_1", "iso_639_1"},
		UpdateColumns:   []string{"name"},
	}
	for _, c := range countries {
		parent.Rows = append(parent.Rows, []any{c.ISO31661})
		translation.Rows = append(translation.Rows, []any{c.ISO31661, langEN, c.EnglishName})
	}
	for _, c := range countries {
		translation.Rows = append(translation.Rows, []any{c.ISO31661, langFR, c.NativeName})
	}
	return []database.Upsert{parent, translation}
}
