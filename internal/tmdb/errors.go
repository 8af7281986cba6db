// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

import (
	"errors"
	"fmt"
)

// Kind classifies client failures so callers can tell "the entity does not
// exist upstream" apart from "the upstream is unreachable". Reconciliation
// depends on the distinction: an unreachable upstream must never look like
// an empty one.
type Kind int

const (
	// KindUpstream covers transport faults and unexpected HTTP statuses.
	KindUpstream Kind = iota
	// KindNotFound covers HTTP 404 and TMDB's success:false envelope.
	KindNotFound
	// KindDecode covers malformed response payloads.
	KindDecode
)

// String returns a short label for the kind, used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDecode:
		return "decode"
	default:
		return "upstream"
	}
}

// Error is the client's failure type.
type Error struct {
	Kind     Kind
	Endpoint string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tmdb %s: %s: %v", e.Endpoint, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a KindNotFound client error.
func IsNotFound(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindNotFound
}

// IsUpstream reports whether err is a KindUpstream client error.
func IsUpstream(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindUpstream
}

func newError(kind Kind, endpoint string, err error) *Error {
	return &Error{Kind: kind, Endpoint: endpoint, Err: err}
}
