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

// genreListing is the merged movie+tv genre listing in both locales. The
// pass is valid only when all four listing fetches succeed.
type genreListing struct {
	en []models.Genre
	fr []models.Genre
}

// syncGenre reconciles tmdb_genre against the union of the movie and tv
// genre listings.
func (m *Manager) syncGenre(ctx context.Context) error {
	dst, err := m.store.Int64IDs(ctx, "tmdb_genre", "id")
	if err != nil {
		return err
	}

	listing, err := m.fetchGenres(ctx)
	if err != nil {
		return err
	}
	src := make([]int64, 0, len(listing.en))
	for _, g := range listing.en {
		src = append(src, g.ID)
	}

	toDelete, _, err := guardedReconcile("genre", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedInt64(ctx, m.store, "genre", "tmdb_genre", "id", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "genre", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	flushChunk(ctx, cfg, listing.en, func(ctx context.Context, _ []models.Genre) error {
		return m.store.UpsertBatch(ctx, genreSpecs(listing))
	})
	return nil
}

func (m *Manager) fetchGenres(ctx context.Context) (*genreListing, error) {
	var listing genreListing
	for _, mediaType := range []string{"movie", "tv"} {
		en, err := m.client.Genres(ctx, mediaType, localeEN)
		if err != nil {
			return nil, err
		}
		fr, err := m.client.Genres(ctx, mediaType, localeFR)
		if err != nil {
			return nil, err
		}
		listing.en = append(listing.en, en...)
		listing.fr = append(listing.fr, fr...)
	}
	return &listing, nil
}

func genreSpecs(listing *genreListing) []database.Upsert {
	parent := database.Upsert{
		Table:           "tmdb_genre",
		Columns:         []string{"id"},
		ConflictColumns: []string{"id"},
	}
	translation := database.Upsert{
		Table:           "tmdb_genre_translation",
		Columns:         []string{"genre", "language", "name"},
		ConflictColumns: []string{"genre", "language"},
		UpdateColumns:   []string{"name"},
	}
	for _, g := range listing.en {
		parent.Rows = append(parent.Rows, []any{g.ID})
		translation.Rows = append(translation.Rows, []any{g.ID, langEN, g.Name})
	}
	for _, g := range listing.fr {
		translation.Rows = append(translation.Rows, []any{g.ID, langFR, g.Name})
	}
	return []database.Upsert{parent, translation}
}
