// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package tmdb defines typed representations of TMDB API responses.
//
// Each struct mirrors one endpoint's JSON payload and is decoded with
// goccy/go-json by the client package. Optional fields that TMDB returns as
// null are pointers; fields TMDB returns as empty strings stay plain strings
// and are normalized at upsert time.
//
// The API reports application-level failure through a shared envelope
// ({"success": false, "status_code": 34, "status_message": "..."}) carried
// here as ErrorEnvelope.
package tmdb
