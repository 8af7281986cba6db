// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

// ErrorEnvelope is TMDB's application-level failure wrapper. Success is a
// pointer because successful payloads omit the field entirely; only
// `"success": false` marks a failed request.
type ErrorEnvelope struct {
	Success       *bool  `json:"success,omitempty"`
	StatusCode    int    `json:"status_code,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}

// Failed reports whether the envelope marks an API-level failure.
func (e *ErrorEnvelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// Envelope returns the embedded envelope, promoting it through any payload
// struct that embeds ErrorEnvelope.
func (e *ErrorEnvelope) Envelope() *ErrorEnvelope {
	return e
}

// ChangesPage is one page of the paginated "changes since" listing
// (GET /{entity}/changes?start_date=...&end_date=...&page=N).
type ChangesPage struct {
	ErrorEnvelope
	Results      []ChangedID `json:"results"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// ChangedID identifies one entity modified inside the queried window.
type ChangedID struct {
	ID    int64 `json:"id"`
	Adult *bool `json:"adult,omitempty"`
}

// ExportLine is one newline-delimited JSON record from a daily id export
// file. Only ID is present for every entity type; the remaining fields vary
// by type and are kept for diagnostics.
type ExportLine struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	Adult         bool    `json:"adult,omitempty"`
}
