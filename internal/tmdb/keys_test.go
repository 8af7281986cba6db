// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

import (
	"errors"
	"sync"
	"testing"
)

func TestNewKeyRingRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := NewKeyRing(nil); !errors.Is(err, ErrNoKeys) {
		t.Errorf("NewKeyRing(nil) error = %v, want ErrNoKeys", err)
	}
	if _, err := NewKeyRing([]string{}); !errors.Is(err, ErrNoKeys) {
		t.Errorf("NewKeyRing(empty) error = %v, want ErrNoKeys", err)
	}
}

func TestKeyRingRoundRobin(t *testing.T) {
	t.Parallel()

	ring, err := NewKeyRing([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewKeyRing() error = %v", err)
	}

	want := []string{"a", "b", "c", "a", "b", "c", "a"}
	for i, w := range want {
		if got := ring.Next(); got != w {
			t.Errorf("Next() call %d = %q, want %q", i, got, w)
		}
	}
}

func TestKeyRingSingleKey(t *testing.T) {
	t.Parallel()

	ring, err := NewKeyRing([]string{"only"})
	if err != nil {
		t.Fatalf("NewKeyRing() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		if got := ring.Next(); got != "only" {
			t.Errorf("Next() call %d = %q, want %q", i, got, "only")
		}
	}
}

func TestKeyRingConcurrentDistribution(t *testing.T) {
	t.Parallel()

	keys := []string{"k1", "k2", "k3", "k4"}
	ring, err := NewKeyRing(keys)
	if err != nil {
		t.Fatalf("NewKeyRing() error = %v", err)
	}

	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	counts := make(map[string]int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make(map[string]int)
			for i := 0; i < perWorker; i++ {
				local[ring.Next()]++
			}
			mu.Lock()
			for k, n := range local {
				counts[k] += n
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	total := 0
	for _, k := range keys {
		n := counts[k]
		if n == 0 {
			t.Errorf("key %q was never handed out", k)
		}
		total += n
	}
	if want := workers * perWorker; total != want {
		t.Errorf("total handouts = %d, want %d", total, want)
	}
	// Atomic rotation hands out each key the same number of times.
	want := workers * perWorker / len(keys)
	for _, k := range keys {
		if counts[k] != want {
			t.Errorf("key %q handed out %d times, want %d", k, counts[k], want)
		}
	}
}
