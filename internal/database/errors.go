// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package database

import "errors"

var (
	// ErrEmptyTable is returned when a prerequisite reference table holds no
	// rows. Entity passes that join against reference data treat this as a
	// missing prerequisite, not as a clean slate.
	ErrEmptyTable = errors.New("database: table has no rows")

	// ErrNoWatermark is returned when the sync log holds no successful run
	// for the requested entity. Incremental passes fail fast rather than
	// guessing a window.
	ErrNoWatermark = errors.New("database: no successful run recorded")
)
