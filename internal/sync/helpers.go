// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import "time"

// asDate parses an upstream YYYY-MM-DD string into a nullable date. The API
// uses both null and "" for unknown dates; both map to nil, as does any
// unparseable value.
func asDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// asDateString is asDate for non-pointer fields.
func asDateString(s string) *time.Time {
	if s == "" {
		return nil
	}
	return asDate(&s)
}
