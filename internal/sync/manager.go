// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
manager.go - Sync Orchestrator

This file provides the Manager that drives one full reconciliation run:
every configured entity type in dependency order, each pass converted into
an append-only sync log row, failures isolated per entity.

Entity order matters: movie association rows reference languages, countries,
genres, keywords, collections, companies, and persons by id, and the movie
pass filters its association values against snapshots of those tables. The
reference entities therefore sync first.

Related Files:
  - reconcile.go: set difference and the empty-source wipe guard
  - bulksync.go: chunked concurrent fetch + transactional flush
  - changes.go: paginated incremental sync bounded by the watermark
  - language.go .. movie.go: the per-entity passes
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/database"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	models "github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// Locale pair fetched for every translated entity. The second element of
// each pair is the language tag stored in translation rows.
const (
	localeEN = "en-US"
	localeFR = "fr-FR"
	langEN   = "en"
	langFR   = "fr"
)

// Store is the destination surface the passes need. *database.DB implements
// it; tests substitute an in-memory fake.
type Store interface {
	StringIDs(ctx context.Context, table, column string) ([]string, error)
	Int64IDs(ctx context.Context, table, column string) ([]int64, error)
	DeleteStringIDs(ctx context.Context, table, column string, ids []string) (int64, error)
	DeleteInt64IDs(ctx context.Context, table, column string, ids []int64) (int64, error)
	UpsertBatch(ctx context.Context, specs []database.Upsert) error
	RecordRun(ctx context.Context, entity string, at time.Time, success bool) error
	LastSuccessfulRun(ctx context.Context, entity string) (time.Time, error)
}

// Fetcher is the upstream surface the passes need. *tmdb.Client implements
// it; tests substitute a fake.
type Fetcher interface {
	Languages(ctx context.Context) ([]models.Language, error)
	Countries(ctx context.Context, locale string) ([]models.Country, error)
	Genres(ctx context.Context, mediaType, locale string) ([]models.Genre, error)
	Collection(ctx context.Context, id int64, locale string) (*models.Collection, error)
	Company(ctx context.Context, id int64) (*models.Company, error)
	Person(ctx context.Context, id int64, locale string) (*models.Person, error)
	Movie(ctx context.Context, id int64, locale string) (*models.Movie, error)
	Changes(ctx context.Context, entity string, start, end time.Time, page int) (*models.ChangesPage, error)
	ExportIDs(ctx context.Context, exportType string, date time.Time) ([]models.ExportLine, error)
}

// Manager orchestrates one reconciliation run.
//
// The orchestrator is sequential across entity types; concurrency lives
// inside each pass's fetch pool. Not safe for concurrent Run calls.
type Manager struct {
	store   Store
	client  Fetcher
	cfg     *config.SyncConfig
	runDate time.Time
	runID   uuid.UUID
}

// NewManager wires a run over the given destination and upstream.
func NewManager(store Store, client Fetcher, cfg *config.SyncConfig, runDate time.Time) *Manager {
	return &Manager{
		store:   store,
		client:  client,
		cfg:     cfg,
		runDate: runDate,
		runID:   uuid.New(),
	}
}

// entityPass is one entity type's full sync.
type entityPass struct {
	name string
	run  func(ctx context.Context) error
}

func (m *Manager) passes() []entityPass {
	all := []entityPass{
		{"language", m.syncLanguage},
		{"country", m.syncCountry},
		{"genre", m.syncGenre},
		{"keyword", m.syncKeyword},
		{"collection", m.syncCollection},
		{"company", m.syncCompany},
		{"person", m.syncPerson},
		{"movie", m.syncMovie},
	}
	if len(m.cfg.Entities) == 0 {
		return all
	}
	enabled := idSet(m.cfg.Entities)
	var selected []entityPass
	for _, p := range all {
		if _, ok := enabled[p.name]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}

// Run executes every configured entity pass in dependency order. A failing
// pass is logged, recorded in the sync log, and does not stop later passes;
// the returned error aggregates every failure so the caller can exit
// non-zero.
func (m *Manager) Run(ctx context.Context) error {
	logging.Info().
		Str("run_id", m.runID.String()).
		Time("run_date", m.runDate).
		Msg("Starting reconciliation run")

	var failures []error
	for _, pass := range m.passes() {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		if err := m.runPass(ctx, pass); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", pass.name, err))
		}
	}

	if len(failures) > 0 {
		logging.Error().
			Str("run_id", m.runID.String()).
			Int("failed_entities", len(failures)).
			Msg("Reconciliation run finished with failures")
		return errors.Join(failures...)
	}

	logging.Info().
		Str("run_id", m.runID.String()).
		Msg("Reconciliation run finished")
	return nil
}

// runPass wraps one entity pass with timing, metrics, and its sync log row.
// The log row is written for success and failure alike; a failure writing
// the row itself surfaces as the pass error.
func (m *Manager) runPass(ctx context.Context, pass entityPass) error {
	logging.Info().
		Str("entity", pass.name).
		Msg("Starting entity pass")

	start := time.Now()
	err := pass.run(ctx)
	metrics.RecordSyncOutcome(pass.name, time.Since(start), err == nil)

	if logErr := m.store.RecordRun(ctx, pass.name, m.runDate, err == nil); logErr != nil {
		logging.Error().
			Err(logErr).
			Str("entity", pass.name).
			Msg("Failed to record sync log row")
		if err == nil {
			err = logErr
		}
	}

	if err != nil {
		logging.Error().
			Err(err).
			Str("entity", pass.name).
			Dur("elapsed", time.Since(start)).
			Msg("Entity pass failed")
		return err
	}

	logging.Info().
		Str("entity", pass.name).
		Dur("elapsed", time.Since(start)).
		Msg("Entity pass finished")
	return nil
}

// deleteVanishedInt64 removes destination rows whose ids vanished upstream
// and records the per-entity delete metric.
func deleteVanishedInt64(ctx context.Context, store Store, entity, table, column string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	logging.Warn().
		Str("entity", entity).
		Int("count", len(ids)).
		Msg("Deleting rows missing upstream")
	n, err := store.DeleteInt64IDs(ctx, table, column, ids)
	if err != nil {
		return err
	}
	metrics.SyncDeletedTotal.WithLabelValues(entity).Add(float64(n))
	return nil
}

func deleteVanishedString(ctx context.Context, store Store, entity, table, column string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	logging.Warn().
		Str("entity", entity).
		Int("count", len(ids)).
		Msg("Deleting rows missing upstream")
	n, err := store.DeleteStringIDs(ctx, table, column, ids)
	if err != nil {
		return err
	}
	metrics.SyncDeletedTotal.WithLabelValues(entity).Add(float64(n))
	return nil
}
