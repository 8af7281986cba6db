// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
)

// bulkSync partitions ids into chunks of cfg.ChunkSize and, per chunk,
// fetches records concurrently through a pool of cfg.Workers goroutines,
// then flushes the collected records as one unit.
//
// A failed fetch drops that id from the current cycle; it is logged and
// counted, never fatal. A failed flush rolls back only that chunk and later
// chunks still run. Context cancellation is the only error that aborts the
// whole loop.
func bulkSync[R any](
	ctx context.Context,
	cfg bulkConfig,
	ids []int64,
	fetchOne func(ctx context.Context, id int64) (R, error),
	flush func(ctx context.Context, records []R) error,
) error {
	if len(ids) == 0 {
		return nil
	}

	logging.Info().
		Str("entity", cfg.Entity).
		Int("missing", len(ids)).
		Int("chunk_size", cfg.ChunkSize).
		Int("workers", cfg.Workers).
		Msg("Bulk syncing missing records")

	for chunk := range slices.Chunk(ids, cfg.ChunkSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, err := fetchChunk(ctx, cfg, chunk, fetchOne)
		if err != nil {
			return err
		}
		flushChunk(ctx, cfg, records, flush)
	}
	return nil
}

// bulkConfig carries the knobs one bulkSync loop needs.
type bulkConfig struct {
	Entity    string
	ChunkSize int
	Workers   int
}

// fetchChunk runs fetchOne across the chunk under a bounded errgroup.
// Individual fetch failures are dropped; only context cancellation
// propagates.
func fetchChunk[R any](
	ctx context.Context,
	cfg bulkConfig,
	chunk []int64,
	fetchOne func(ctx context.Context, id int64) (R, error),
) ([]R, error) {
	var (
		mu      sync.Mutex
		records []R
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, id := range chunk {
		g.Go(func() error {
			rec, err := fetchOne(gctx, id)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				metrics.SyncFetchFailuresTotal.WithLabelValues(cfg.Entity).Inc()
				logging.Warn().
					Err(err).
					Str("entity", cfg.Entity).
					Int64("id", id).
					Msg("Dropping id from current cycle")
				return nil
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// flushChunk commits one chunk's records. A failure is counted and logged;
// the caller proceeds to the next chunk.
func flushChunk[R any](
	ctx context.Context,
	cfg bulkConfig,
	records []R,
	flush func(ctx context.Context, records []R) error,
) {
	if len(records) == 0 {
		return
	}
	if err := flush(ctx, records); err != nil {
		metrics.ChunkFlushFailuresTotal.WithLabelValues(cfg.Entity).Inc()
		logging.Error().
			Err(err).
			Str("entity", cfg.Entity).
			Int("records", len(records)).
			Msg("Chunk flush rolled back")
		return
	}
	metrics.SyncUpsertedTotal.WithLabelValues(cfg.Entity).Add(float64(len(records)))
}
