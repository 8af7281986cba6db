// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
movie.go - Movie Entity Pass

The movie pass is the widest: one bilingual record decomposes into the
parent row plus nine child and association tables (translations, countries,
credits, roles, genres, keywords, spoken languages, production companies,
videos).

Association values are filtered against reference id snapshots taken once
before the pass starts. A referenced entity synced after the snapshot was
taken is dropped from this cycle's association rows; the next run picks it
up. That makes the fixed entity order (references before movies) load
bearing.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"

	"github.com/tomtom215/cinegraph/internal/database"
	"github.com/tomtom215/cinegraph/internal/logging"
	models "github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// movieRecord is one movie in both locales, each payload carrying the
// appended credits, keywords, and videos sub-resources.
type movieRecord struct {
	en *models.Movie
	fr *models.Movie
}

// movieRefs is the reference id snapshot association rows are filtered
// against.
type movieRefs struct {
	languages   map[string]struct{}
	countries   map[string]struct{}
	genres      map[int64]struct{}
	keywords    map[int64]struct{}
	collections map[int64]struct{}
	companies   map[int64]struct{}
	persons     map[int64]struct{}
}

// syncMovie reconciles tmdb_movie in two phases, like syncPerson: daily
// export membership first, then the changes feed. Both flush through the
// same decomposition.
func (m *Manager) syncMovie(ctx context.Context) error {
	refs, err := m.loadMovieRefs(ctx)
	if err != nil {
		return err
	}

	flush := func(ctx context.Context, records []movieRecord) error {
		return m.store.UpsertBatch(ctx, movieSpecs(refs, records))
	}

	if err := m.syncMovieExport(ctx, flush); err != nil {
		return err
	}
	return changesSync(ctx, m, "movie", m.fetchMovie, flush)
}

// loadMovieRefs snapshots every reference table the association rows join
// against. An empty reference table is a missing prerequisite: the
// reference passes run first, so emptiness here means they never succeeded.
func (m *Manager) loadMovieRefs(ctx context.Context) (*movieRefs, error) {
	languages, err := m.store.StringIDs(ctx, "tmdb_language", "iso_639_1")
	if err != nil {
		return nil, err
	}
	countries, err := m.store.StringIDs(ctx, "tmdb_country", "iso_3166_1")
	if err != nil {
		return nil, err
	}
	genres, err := m.store.Int64IDs(ctx, "tmdb_genre", "id")
	if err != nil {
		return nil, err
	}
	keywords, err := m.store.Int64IDs(ctx, "tmdb_keyword", "id")
	if err != nil {
		return nil, err
	}
	collections, err := m.store.Int64IDs(ctx, "tmdb_collection", "id")
	if err != nil {
		return nil, err
	}
	companies, err := m.store.Int64IDs(ctx, "tmdb_company", "id")
	if err != nil {
		return nil, err
	}
	persons, err := m.store.Int64IDs(ctx, "tmdb_person", "id")
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Int("languages", len(languages)).
		Int("countries", len(countries)).
		Int("genres", len(genres)).
		Int("keywords", len(keywords)).
		Int("collections", len(collections)).
		Int("companies", len(companies)).
		Int("persons", len(persons)).
		Msg("Snapshotted movie reference tables")

	return &movieRefs{
		languages:   idSet(languages),
		countries:   idSet(countries),
		genres:      idSet(genres),
		keywords:    idSet(keywords),
		collections: idSet(collections),
		companies:   idSet(companies),
		persons:     idSet(persons),
	}, nil
}

func (m *Manager) syncMovieExport(ctx context.Context, flush func(context.Context, []movieRecord) error) error {
	dst, err := m.store.Int64IDs(ctx, "tmdb_movie", "id")
	if err != nil {
		return err
	}

	lines, err := m.client.ExportIDs(ctx, "movie", m.runDate)
	if err != nil {
		return err
	}
	src := make([]int64, 0, len(lines))
	for _, line := range lines {
		src = append(src, line.ID)
	}

	toDelete, toAdd, err := guardedReconcile("movie", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedInt64(ctx, m.store, "movie", "tmdb_movie", "id", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "movie", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	return bulkSync(ctx, cfg, toAdd, m.fetchMovie, flush)
}

func (m *Manager) fetchMovie(ctx context.Context, id int64) (movieRecord, error) {
	en, err := m.client.Movie(ctx, id, localeEN)
	if err != nil {
		return movieRecord{}, err
	}
	fr, err := m.client.Movie(ctx, id, localeFR)
	if err != nil {
		return movieRecord{}, err
	}
	return movieRecord{en: en, fr: fr}, nil
}

// movieSpecs decomposes bilingual movie records into upsert specs for the
// parent table and every child table, ordered parent first so foreign keys
// resolve inside the one flush transaction.
func movieSpecs(refs *movieRefs, records []movieRecord) []database.Upsert {
	parent := database.Upsert{
		Table: "tmdb_movie",
		Columns: []string{
			"id", "adult", "backdrop_path", "budget", "homepage", "imdb_id",
			"original_language", "original_title", "popularity", "release_date",
			"revenue", "runtime", "status", "vote_average", "vote_count",
			"collection_id",
		},
		ConflictColumns: []string{"id"},
		UpdateColumns: []string{
			"adult", "backdrop_path", "budget", "homepage", "imdb_id",
			"original_language", "original_title", "popularity", "release_date",
			"revenue", "runtime", "status", "vote_average", "vote_count",
			"collection_id",
		},
	}
	translation := database.Upsert{
		Table:           "tmdb_movie_translation",
		Columns:         []string{"movie_id", "language_id", "overview", "poster_path", "tagline", "title"},
		ConflictColumns: []string{"movie_id", "language_id"},
		UpdateColumns:   []string{"overview", "poster_path", "tagline", "title"},
	}
	country := database.Upsert{
		Table:           "tmdb_movie_country",
		Columns:         []string{"movie_id", "country_id"},
		ConflictColumns: []string{"movie_id", "country_id"},
	}
	credit := database.Upsert{
		Table:           "tmdb_movie_credits",
		Columns:         []string{"id", "movie_id", "person_id", "department", "job"},
		ConflictColumns: []string{"id"},
	}
	role := database.Upsert{
		Table:           "tmdb_movie_role",
		Columns:         []string{"credit_id", "character", "order"},
		ConflictColumns: []string{"credit_id"},
	}
	genre := database.Upsert{
		Table:           "tmdb_movie_genre",
		Columns:         []string{"movie_id", "genre_id"},
		ConflictColumns: []string{"movie_id", "genre_id"},
	}
	keyword := database.Upsert{
		Table:           "tmdb_movie_keyword",
		Columns:         []string{"movie_id", "keyword_id"},
		ConflictColumns: []string{"movie_id", "keyword_id"},
	}
	language := database.Upsert{
		Table:           "tmdb_movie_language",
		Columns:         []string{"movie_id", "language_id"},
		ConflictColumns: []string{"movie_id", "language_id"},
	}
	production := database.Upsert{
		Table:           "tmdb_movie_production",
		Columns:         []string{"movie_id", "company_id"},
		ConflictColumns: []string{"movie_id", "company_id"},
	}
	video := database.Upsert{
		Table: "tmdb_movie_videos",
		Columns: []string{
			"id", "movie_id", "iso_639_1", "iso_3166_1", "name", "key",
			"site", "size", "type", "official",
		},
		ConflictColumns: []string{"id"},
	}

	for _, rec := range records {
		en := rec.en
		movieID := en.ID

		var collectionID *int64
		if en.BelongsToCollection != nil {
			if _, ok := refs.collections[en.BelongsToCollection.ID]; ok {
				collectionID = &en.BelongsToCollection.ID
			}
		}
		parent.Rows = append(parent.Rows, []any{
			movieID, en.Adult, en.BackdropPath, en.Budget, en.Homepage, en.IMDBID,
			en.OriginalLanguage, en.OriginalTitle, en.Popularity,
			asDateString(en.ReleaseDate), en.Revenue, en.Runtime, en.Status,
			en.VoteAverage, en.VoteCount, collectionID,
		})

		translation.Rows = append(translation.Rows,
			[]any{movieID, langEN, en.Overview, en.PosterPath, en.Tagline, en.Title},
			[]any{movieID, langFR, rec.fr.Overview, rec.fr.PosterPath, rec.fr.Tagline, rec.fr.Title})

		for _, c := range en.ProductionCountries {
			if _, ok := refs.countries[c.ISO31661]; ok {
				country.Rows = append(country.Rows, []any{movieID, c.ISO31661})
			}
		}

		if en.Credits != nil {
			for _, cast := range en.Credits.Cast {
				if _, ok := refs.persons[cast.ID]; !ok {
					continue
				}
				credit.Rows = append(credit.Rows,
					[]any{cast.CreditID, movieID, cast.ID, "Acting", "Actor"})
				role.Rows = append(role.Rows,
					[]any{cast.CreditID, cast.Character, cast.Order})
			}
			for _, crew := range en.Credits.Crew {
				if _, ok := refs.persons[crew.ID]; !ok {
					continue
				}
				credit.Rows = append(credit.Rows,
					[]any{crew.CreditID, movieID, crew.ID, crew.Department, crew.Job})
			}
		}

		for _, g := range en.Genres {
			if _, ok := refs.genres[g.ID]; ok {
				genre.Rows = append(genre.Rows, []any{movieID, g.ID})
			}
		}

		if en.Keywords != nil {
			for _, k := range en.Keywords.Keywords {
				if _, ok := refs.keywords[k.ID]; ok {
					keyword.Rows = append(keyword.Rows, []any{movieID, k.ID})
				}
			}
		}

		for _, l := range en.SpokenLanguages {
			if _, ok := refs.languages[l.ISO6391]; ok {
				language.Rows = append(language.Rows, []any{movieID, l.ISO6391})
			}
		}

		for _, c := range en.ProductionCompanies {
			if _, ok := refs.companies[c.ID]; ok {
				production.Rows = append(production.Rows, []any{movieID, c.ID})
			}
		}

		video.Rows = append(video.Rows, videoRows(movieID, langEN, en.Videos)...)
		video.Rows = append(video.Rows, videoRows(movieID, langFR, rec.fr.Videos)...)
	}

	return []database.Upsert{
		parent, translation, country, credit, role,
		genre, keyword, language, production, video,
	}
}

// videoRows keeps only trailers and teasers whose audio language matches
// the payload's locale, so each locale contributes its own video set.
func videoRows(movieID int64, lang string, videos *models.VideosEnvelope) [][]any {
	if videos == nil {
		return nil
	}
	var rows [][]any
	for _, v := range videos.Results {
		if v.ISO6391 != lang {
			continue
		}
		if v.Type != "Trailer" && v.Type != "Teaser" {
			continue
		}
		rows = append(rows, []any{
			v.ID, movieID, v.ISO6391, v.ISO31661, v.Name, v.Key,
			v.Site, v.Size, v.Type, v.Official,
		})
	}
	return rows
}
