// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"context"

	"github.com/tomtom215/cinegraph/internal/logging"
)

// changesSync drives the incremental phase for entities with a paginated
// changes feed. The window runs from the entity's watermark (the last
// successful run) to the current run date; the watermark must exist, a
// missing one fails the phase immediately.
//
// Pages are consumed until one comes back empty. Changed ids are fetched
// through the same bounded pool as the bulk phase, and accumulated records
// flush every cfg.FlushPages pages plus once at the end, so a late failure
// cannot discard the whole feed's work.
func changesSync[R any](
	ctx context.Context,
	m *Manager,
	entity string,
	fetchOne func(ctx context.Context, id int64) (R, error),
	flush func(ctx context.Context, records []R) error,
) error {
	since, err := m.store.LastSuccessfulRun(ctx, entity)
	if err != nil {
		return err
	}

	cfg := bulkConfig{Entity: entity, ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}

	logging.Info().
		Str("entity", entity).
		Time("since", since).
		Time("until", m.runDate).
		Msg("Syncing changes feed")

	var pending []R
	page := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := m.client.Changes(ctx, entity, since, m.runDate, page)
		if err != nil {
			return err
		}
		if len(resp.Results) == 0 {
			break
		}

		ids := make([]int64, 0, len(resp.Results))
		for _, changed := range resp.Results {
			ids = append(ids, changed.ID)
		}

		records, err := fetchChunk(ctx, cfg, ids, fetchOne)
		if err != nil {
			return err
		}
		pending = append(pending, records...)

		if page%m.cfg.FlushPages == 0 {
			flushChunk(ctx, cfg, pending, flush)
			pending = nil
		}
		page++
	}

	flushChunk(ctx, cfg, pending, flush)
	return nil
}
