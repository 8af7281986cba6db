// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/cinegraph/internal/database"
	models "github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// fakeStore is an in-memory Store. Reads serve the seeded id sets; writes
// are recorded, not applied, so tests can assert on exactly what the passes
// issued.
type fakeStore struct {
	mu         sync.Mutex
	strings    map[string][]string
	ints       map[string][]int64
	watermarks map[string]time.Time

	deletedStr map[string][]string
	deletedInt map[string][]int64
	batches    [][]database.Upsert
	runs       []fakeRun

	upsertHook func(specs []database.Upsert) error
	recordErr  error
}

type fakeRun struct {
	entity  string
	success bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		strings:    make(map[string][]string),
		ints:       make(map[string][]int64),
		watermarks: make(map[string]time.Time),
		deletedStr: make(map[string][]string),
		deletedInt: make(map[string][]int64),
	}
}

func (s *fakeStore) StringIDs(_ context.Context, table, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.strings[table]
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", database.ErrEmptyTable, table)
	}
	return ids, nil
}

func (s *fakeStore) Int64IDs(_ context.Context, table, _ string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.ints[table]
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", database.ErrEmptyTable, table)
	}
	return ids, nil
}

func (s *fakeStore) DeleteStringIDs(_ context.Context, table, _ string, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletedStr[table] = append(s.deletedStr[table], ids...)
	return int64(len(ids)), nil
}

func (s *fakeStore) DeleteInt64IDs(_ context.Context, table, _ string, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletedInt[table] = append(s.deletedInt[table], ids...)
	return int64(len(ids)), nil
}

func (s *fakeStore) UpsertBatch(_ context.Context, specs []database.Upsert) error {
	s.mu.Lock()
	hook := s.upsertHook
	s.mu.Unlock()
	if hook != nil {
		if err := hook(specs); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, specs)
	return nil
}

func (s *fakeStore) RecordRun(_ context.Context, entity string, _ time.Time, success bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return s.recordErr
	}
	s.runs = append(s.runs, fakeRun{entity: entity, success: success})
	return nil
}

func (s *fakeStore) LastSuccessfulRun(_ context.Context, entity string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.watermarks[entity]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", database.ErrNoWatermark, entity)
	}
	return at, nil
}

// rowsFor returns every row issued for a table across all flushed batches.
func (s *fakeStore) rowsFor(table string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows [][]any
	for _, specs := range s.batches {
		for _, spec := range specs {
			if spec.Table == table {
				rows = append(rows, spec.Rows...)
			}
		}
	}
	return rows
}

// fakeFetcher is an in-memory Fetcher serving seeded payloads. A missing id
// behaves like an upstream not-found.
type fakeFetcher struct {
	mu sync.Mutex

	languages    []models.Language
	languagesErr error
	countries    []models.Country
	genres       map[string][]models.Genre // keyed mediaType
	genresErr    error
	collections  map[int64]*models.Collection
	companies    map[int64]*models.Company
	persons      map[int64]*models.Person
	movies       map[int64]*models.Movie
	exports      map[string][]models.ExportLine
	exportErrs   map[string]error
	changes      map[string][]models.ChangesPage
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		genres:      make(map[string][]models.Genre),
		collections: make(map[int64]*models.Collection),
		companies:   make(map[int64]*models.Company),
		persons:     make(map[int64]*models.Person),
		movies:      make(map[int64]*models.Movie),
		exports:     make(map[string][]models.ExportLine),
		exportErrs:  make(map[string]error),
		changes:     make(map[string][]models.ChangesPage),
	}
}

func (f *fakeFetcher) Languages(context.Context) ([]models.Language, error) {
	if f.languagesErr != nil {
		return nil, f.languagesErr
	}
	return f.languages, nil
}

func (f *fakeFetcher) Countries(context.Context, string) ([]models.Country, error) {
	return f.countries, nil
}

func (f *fakeFetcher) Genres(_ context.Context, mediaType, _ string) ([]models.Genre, error) {
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres[mediaType], nil
}

func (f *fakeFetcher) Collection(_ context.Context, id int64, _ string) (*models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.collections[id]
	if !ok {
		return nil, fmt.Errorf("collection %d not found", id)
	}
	return c, nil
}

func (f *fakeFetcher) Company(_ context.Context, id int64) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %d not found", id)
	}
	return c, nil
}

func (f *fakeFetcher) Person(_ context.Context, id int64, _ string) (*models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[id]
	if !ok {
		return nil, fmt.Errorf("person %d not found", id)
	}
	return p, nil
}

func (f *fakeFetcher) Movie(_ context.Context, id int64, _ string) (*models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie %d not found", id)
	}
	return m, nil
}

func (f *fakeFetcher) Changes(_ context.Context, entity string, _, _ time.Time, page int) (*models.ChangesPage, error) {
	pages := f.changes[entity]
	if page < 1 || page > len(pages) {
		return &models.ChangesPage{Page: page}, nil
	}
	p := pages[page-1]
	return &p, nil
}

func (f *fakeFetcher) ExportIDs(_ context.Context, exportType string, _ time.Time) ([]models.ExportLine, error) {
	if err := f.exportErrs[exportType]; err != nil {
		return nil, err
	}
	return f.exports[exportType], nil
}
