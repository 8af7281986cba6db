// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"testing"

	"github.com/tomtom215/cinegraph/internal/database"
	models "github.com/tomtom215/cinegraph/internal/models/tmdb"
)

func fullRefs() *movieRefs {
	return &movieRefs{
		languages:   idSet([]string{"en", "fr"}),
		countries:   idSet([]string{"US"}),
		genres:      idSet([]int64{28}),
		keywords:    idSet([]int64{7}),
		collections: idSet([]int64{10}),
		companies:   idSet([]int64{5}),
		persons:     idSet([]int64{100, 200}),
	}
}

func matrixMovie() movieRecord {
	en := &models.Movie{
		ID:                  603,
		Adult:               false,
		Budget:              63000000,
		OriginalLanguage:    "en",
		OriginalTitle:       "The Matrix",
		Overview:            "A hacker learns the truth.",
		ReleaseDate:         "1999-03-30",
		Revenue:             463517383,
		Runtime:             136,
		Status:              "Released",
		Title:               "The Matrix",
		VoteAverage:         8.2,
		VoteCount:           24000,
		BelongsToCollection: &models.CollectionRef{ID: 10, Name: "The Matrix Collection"},
		Genres:              []models.Genre{{ID: 28, Name: "Action"}, {ID: 9999, Name: "Unsynced"}},
		ProductionCountries: []models.CountryRef{{ISO31661: "US"}, {ISO31661: "ZZ"}},
		ProductionCompanies: []models.CompanyRef{{ID: 5}, {ID: 77}},
		SpokenLanguages:     []models.SpokenLanguage{{ISO6391: "en"}, {ISO6391: "zz"}},
		Credits: &models.Credits{
			Cast: []models.CastMember{
				{ID: 100, CreditID: "c-neo", Character: "Neo", Order: 0},
				{ID: 999, CreditID: "c-ghost", Character: "Ghost", Order: 5},
			},
			Crew: []models.CrewMember{
				{ID: 200, CreditID: "c-dir", Department: "Directing", Job: "Director"},
				{ID: 888, CreditID: "c-lost", Department: "Writing", Job: "Writer"},
			},
		},
		Keywords: &models.KeywordsEnvelope{
			Keywords: []models.Keyword{{ID: 7, Name: "cyberpunk"}, {ID: 8, Name: "unsynced"}},
		},
		Videos: &models.VideosEnvelope{
			Results: []models.Video{
				{ID: "v1", ISO6391: "en", Type: "Trailer", Key: "abc", Site: "YouTube"},
				{ID: "v2", ISO6391: "en", Type: "Featurette", Key: "def"},
				{ID: "v3", ISO6391: "fr", Type: "Trailer", Key: "ghi"},
			},
		},
	}
	fr := &models.Movie{
		ID:       603,
		Overview: "Un hacker apprend la verite.",
		Tagline:  "Bienvenue dans le monde reel.",
		Title:    "Matrix",
		Videos: &models.VideosEnvelope{
			Results: []models.Video{
				{ID: "v4", ISO6391: "fr", Type: "Teaser", Key: "jkl"},
				{ID: "v5", ISO6391: "en", Type: "Trailer", Key: "mno"},
			},
		},
	}
	return movieRecord{en: en, fr: fr}
}

func specByTable(t *testing.T, specs []database.Upsert, table string) database.Upsert {
	t.Helper()
	for _, s := range specs {
		if s.Table == table {
			return s
		}
	}
	t.Fatalf("no spec for table %s", table)
	return database.Upsert{}
}

func TestMovieSpecsDecomposition(t *testing.T) {
	t.Parallel()

	specs := movieSpecs(fullRefs(), []movieRecord{matrixMovie()})
	if len(specs) != 10 {
		t.Fatalf("movieSpecs produced %d specs, want 10", len(specs))
	}
	if specs[0].Table != "tmdb_movie" {
		t.Errorf("first spec = %s, want tmdb_movie so foreign keys resolve", specs[0].Table)
	}

	parent := specByTable(t, specs, "tmdb_movie")
	if len(parent.Rows) != 1 {
		t.Fatalf("parent rows = %d, want 1", len(parent.Rows))
	}
	row := parent.Rows[0]
	if row[0] != int64(603) {
		t.Errorf("parent id = %v, want 603", row[0])
	}
	collectionID, ok := row[len(row)-1].(*int64)
	if !ok || collectionID == nil || *collectionID != 10 {
		t.Errorf("collection_id = %v, want *10", row[len(row)-1])
	}

	translation := specByTable(t, specs, "tmdb_movie_translation")
	if len(translation.Rows) != 2 {
		t.Fatalf("translation rows = %d, want en and fr", len(translation.Rows))
	}
	if translation.Rows[1][1] != langFR || translation.Rows[1][5] != "Matrix" {
		t.Errorf("fr translation row = %v", translation.Rows[1])
	}
}

func TestMovieSpecsFiltersUnknownReferences(t *testing.T) {
	t.Parallel()

	specs := movieSpecs(fullRefs(), []movieRecord{matrixMovie()})

	cases := []struct {
		table string
		want  int
	}{
		{"tmdb_movie_country", 1},    // ZZ dropped
		{"tmdb_movie_genre", 1},      // 9999 dropped
		{"tmdb_movie_keyword", 1},    // 8 dropped
		{"tmdb_movie_language", 1},   // zz dropped
		{"tmdb_movie_production", 1}, // 77 dropped
		{"tmdb_movie_credits", 2},    // persons 999 and 888 dropped
		{"tmdb_movie_role", 1},       // roles only for kept cast
	}
	for _, tc := range cases {
		spec := specByTable(t, specs, tc.table)
		if len(spec.Rows) != tc.want {
			t.Errorf("%s rows = %d, want %d: %v", tc.table, len(spec.Rows), tc.want, spec.Rows)
		}
	}
}

func TestMovieSpecsUnknownCollectionWritesNull(t *testing.T) {
	t.Parallel()

	rec := matrixMovie()
	rec.en.BelongsToCollection = &models.CollectionRef{ID: 555}

	specs := movieSpecs(fullRefs(), []movieRecord{rec})
	parent := specByTable(t, specs, "tmdb_movie")
	if got := parent.Rows[0][len(parent.Rows[0])-1].(*int64); got != nil {
		t.Errorf("collection_id = %v, want nil for a collection not yet synced", *got)
	}
}

func TestMovieSpecsCastCredits(t *testing.T) {
	t.Parallel()

	specs := movieSpecs(fullRefs(), []movieRecord{matrixMovie()})
	credits := specByTable(t, specs, "tmdb_movie_credits")

	var castRow []any
	for _, r := range credits.Rows {
		if r[0] == "c-neo" {
			castRow = r
		}
	}
	if castRow == nil {
		t.Fatal("cast credit c-neo missing")
	}
	if castRow[3] != "Acting" || castRow[4] != "Actor" {
		t.Errorf("cast credit department/job = %v/%v, want Acting/Actor", castRow[3], castRow[4])
	}

	roles := specByTable(t, specs, "tmdb_movie_role")
	if roles.Rows[0][0] != "c-neo" || roles.Rows[0][1] != "Neo" {
		t.Errorf("role row = %v, want credit c-neo playing Neo", roles.Rows[0])
	}
}

func TestVideoRowsFilter(t *testing.T) {
	t.Parallel()

	specs := movieSpecs(fullRefs(), []movieRecord{matrixMovie()})
	videos := specByTable(t, specs, "tmdb_movie_videos")

	// en payload keeps only v1 (en Trailer); v2 is a Featurette and v3 is
	// French audio inside the English payload. fr payload keeps only v4.
	if len(videos.Rows) != 2 {
		t.Fatalf("video rows = %v, want v1 and v4", videos.Rows)
	}
	got := map[any]bool{videos.Rows[0][0]: true, videos.Rows[1][0]: true}
	if !got["v1"] || !got["v4"] {
		t.Errorf("video ids = %v, want v1 and v4", got)
	}
}

func TestVideoRowsNilEnvelope(t *testing.T) {
	t.Parallel()

	if rows := videoRows(603, langEN, nil); rows != nil {
		t.Errorf("videoRows(nil) = %v, want nil", rows)
	}
}
