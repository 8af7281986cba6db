// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

import (
	"errors"
	"sync/atomic"
)

// ErrNoKeys is returned by NewKeyRing when no API keys are configured.
var ErrNoKeys = errors.New("tmdb: at least one API key is required")

// KeyRing hands out API keys round-robin so concurrent workers spread
// request volume across the configured key pool. Safe for concurrent use.
type KeyRing struct {
	keys []string
	next atomic.Uint64
}

// NewKeyRing copies keys into a ring. The slice must be non-empty.
func NewKeyRing(keys []string) (*KeyRing, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	ring := &KeyRing{keys: append([]string(nil), keys...)}
	return ring, nil
}

// Next returns the next key in rotation.
func (r *KeyRing) Next() string {
	n := r.next.Add(1) - 1
	return r.keys[n%uint64(len(r.keys))]
}

// Len returns the number of keys in the ring.
func (r *KeyRing) Len() int {
	return len(r.keys)
}
