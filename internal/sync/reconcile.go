// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrEmptySource is returned when the upstream id listing comes back empty.
// An empty listing is indistinguishable from a broken fetch, so the pass
// aborts before any delete instead of wiping the destination.
var ErrEmptySource = errors.New("sync: source id set is empty")

// Reconcile computes the symmetric difference between the destination and
// source id sets: toDelete holds ids present only in the destination, toAdd
// ids present only in the source. Pure; both outputs are sorted.
func Reconcile[K cmp.Ordered](dst, src []K) (toDelete, toAdd []K) {
	dstSet := make(map[K]struct{}, len(dst))
	for _, id := range dst {
		dstSet[id] = struct{}{}
	}
	srcSet := make(map[K]struct{}, len(src))
	for _, id := range src {
		srcSet[id] = struct{}{}
	}

	for id := range dstSet {
		if _, ok := srcSet[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	for id := range srcSet {
		if _, ok := dstSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	slices.Sort(toDelete)
	slices.Sort(toAdd)
	return toDelete, toAdd
}

// guardedReconcile is Reconcile behind the wipe guard: an empty source set
// fails the pass before any delete can be computed.
func guardedReconcile[K cmp.Ordered](entity string, dst, src []K) (toDelete, toAdd []K, err error) {
	if len(src) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptySource, entity)
	}
	toDelete, toAdd = Reconcile(dst, src)
	return toDelete, toAdd, nil
}

// idSet builds a membership set from a slice of ids.
func idSet[K comparable](ids []K) map[K]struct{} {
	set := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
