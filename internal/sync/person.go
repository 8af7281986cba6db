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

// personRecord is one person in both locales. Only the biography differs
// between the two payloads.
type personRecord struct {
	en *models.Person
	fr *models.Person
}

// syncPerson reconciles tmdb_person in two phases: the daily export drives
// the full membership reconciliation, then the changes feed refreshes
// records modified since the last successful pass.
func (m *Manager) syncPerson(ctx context.Context) error {
	if err := m.syncPersonExport(ctx); err != nil {
		return err
	}
	return changesSync(ctx, m, "person", m.fetchPerson, m.flushPersons)
}

func (m *Manager) syncPersonExport(ctx context.Context) error {
	dst, err := m.store.Int64IDs(ctx, "tmdb_person", "id")
	if err != nil {
		return err
	}

	lines, err := m.client.ExportIDs(ctx, "person", m.runDate)
	if err != nil {
		return err
	}
	src := make([]int64, 0, len(lines))
	for _, line := range lines {
		src = append(src, line.ID)
	}

	toDelete, toAdd, err := guardedReconcile("person", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedInt64(ctx, m.store, "person", "tmdb_person", "id", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "person", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	return bulkSync(ctx, cfg, toAdd, m.fetchPerson, m.flushPersons)
}

func (m *Manager) fetchPerson(ctx context.Context, id int64) (personRecord, error) {
	en, err := m.client.Person(ctx, id, localeEN)
	if err != nil {
		return personRecord{}, err
	}
	fr, err := m.client.Person(ctx, id, localeFR)
	if err != nil {
		return personRecord{}, err
	}
	return personRecord{en: en, fr: fr}, nil
}

func (m *Manager) flushPersons(ctx context.Context, records []personRecord) error {
	return m.store.UpsertBatch(ctx, personSpecs(records))
}

func personSpecs(records []personRecord) []database.Upsert {
	parent := database.Upsert{
		Table: "tmdb_person",
		Columns: []string{
			"id", "adult", "also_known_as", "birthday", "deathday", "gender",
			"homepage", "imdb_id", "known_for_department", "name",
			"place_of_birth", "popularity", "profile_path",
		},
		ConflictColumns: []string{"id"},
		UpdateColumns: []string{
			"adult", "also_known_as", "birthday", "deathday", "gender",
			"homepage", "imdb_id", "known_for_department", "name",
			"place_of_birth", "popularity", "profile_path",
		},
	}
	translation := database.Upsert{
		Table:           "tmdb_person_translation",
		Columns:         []string{"person", "language", "biography"},
		ConflictColumns: []string{"person", "language"},
		UpdateColumns:   []string{"biography"},
	}
	for _, rec := range records {
		p := rec.en
		parent.Rows = append(parent.Rows, []any{
			p.ID, p.Adult, p.AlsoKnownAs, asDate(p.Birthday), asDate(p.Deathday),
			p.Gender, p.Homepage, p.IMDBID, p.KnownForDepartment, p.Name,
			p.PlaceOfBirth, p.Popularity, p.ProfilePath,
		})
		translation.Rows = append(translation.Rows, []any{p.ID, langEN, p.Biography})
	}
	for _, rec := range records {
		translation.Rows = append(translation.Rows, []any{rec.fr.ID, langFR, rec.fr.Biography})
	}
	return []database.Upsert{parent, translation}
}
