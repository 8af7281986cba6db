// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package database

import (
	"strings"
	"testing"
)

func TestPgIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "movie", `"movie"`},
		{"underscored", "movie_genres", `"movie_genres"`},
		{"embedded quote", `mo"vie`, `"mo""vie"`},
		{"empty", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pgIdent(tt.input); got != tt.want {
				t.Errorf("pgIdent(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildUpsertSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec Upsert
		want string
	}{
		{
			name: "update on conflict",
			spec: Upsert{
				Table:           "language",
				Columns:         []string{"iso_639_1", "name_in_english"},
				ConflictColumns: []string{"iso_639_1"},
				UpdateColumns:   []string{"name_in_english"},
			},
			want: `INSERT INTO "language" ("iso_639_1", "name_in_english") VALUES ($1, $2)` +
				` ON CONFLICT ("iso_639_1") DO UPDATE SET "name_in_english" = EXCLUDED."name_in_english"`,
		},
		{
			name: "do nothing on conflict",
			spec: Upsert{
				Table:           "movie_keywords",
				Columns:         []string{"movie_id", "keyword_id"},
				ConflictColumns: []string{"movie_id", "keyword_id"},
			},
			want: `INSERT INTO "movie_keywords" ("movie_id", "keyword_id") VALUES ($1, $2)` +
				` ON CONFLICT ("movie_id", "keyword_id") DO NOTHING`,
		},
		{
			name: "plain insert without conflict target",
			spec: Upsert{
				Table:   "movie_videos",
				Columns: []string{"id", "movie_id", "key"},
			},
			want: `INSERT INTO "movie_videos" ("id", "movie_id", "key") VALUES ($1, $2, $3)`,
		},
		{
			name: "several update columns",
			spec: Upsert{
				Table:           "person",
				Columns:         []string{"id", "name", "popularity"},
				ConflictColumns: []string{"id"},
				UpdateColumns:   []string{"name", "popularity"},
			},
			want: `INSERT INTO "person" ("id", "name", "popularity") VALUES ($1, $2, $3)` +
				` ON CONFLICT ("id") DO UPDATE SET "name" = EXCLUDED."name", "popularity" = EXCLUDED."popularity"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := buildUpsertSQL(tt.spec); got != tt.want {
				t.Errorf("buildUpsertSQL() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestValidateUpsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    Upsert
		wantErr string
	}{
		{
			name: "valid",
			spec: Upsert{
				Table:   "genre",
				Columns: []string{"id", "name"},
				Rows:    [][]any{{int64(28), "Action"}},
			},
		},
		{
			name:    "missing table",
			spec:    Upsert{Columns: []string{"id"}},
			wantErr: "no table",
		},
		{
			name:    "missing columns",
			spec:    Upsert{Table: "genre"},
			wantErr: "no columns",
		},
		{
			name: "row width mismatch",
			spec: Upsert{
				Table:   "genre",
				Columns: []string{"id", "name"},
				Rows:    [][]any{{int64(28)}},
			},
			wantErr: "row 0 has 1 values, want 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateUpsert(tt.spec)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateUpsert() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateUpsert() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateUpsert() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
