// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package sync

import (
	"context"

	"github.com/tomtom215/cinegraph/internal/database"
	models "github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// syncCompany reconciles tmdb_company against the daily production-company
// export. The company endpoint is not locale-qualified; one fetch per id.
func (m *Manager) syncCompany(ctx context.Context) error {
	dst, err := m.store.Int64IDs(ctx, "tmdb_company", "id")
	if err != nil {
		return err
	}

	lines, err := m.client.ExportIDs(ctx, "production_company", m.runDate)
	if err != nil {
		return err
	}
	src := make([]int64, 0, len(lines))
	for _, line := range lines {
		src = append(src, line.ID)
	}

	toDelete, toAdd, err := guardedReconcile("company", dst, src)
	if err != nil {
		return err
	}
	if err := deleteVanishedInt64(ctx, m.store, "company", "tmdb_company", "id", toDelete); err != nil {
		return err
	}

	cfg := bulkConfig{Entity: "company", ChunkSize: m.cfg.ChunkSize, Workers: m.cfg.Workers}
	return bulkSync(ctx, cfg, toAdd,
		func(ctx context.Context, id int64) (*models.Company, error) {
			return m.client.Company(ctx, id)
		},
		func(ctx context.Context, records []*models.Company) error {
			return m.store.UpsertBatch(ctx, companySpecs(records))
		})
}

func companySpecs(records []*models.Company) []database.Upsert {
	spec := database.Upsert{
		Table: "tmdb_company",
		Columns: []string{
			"id", "name", "description", "headquarters", "homepage",
			"logo_path", "origin_country", "parent_company",
		},
		ConflictColumns: []string{"id"},
		UpdateColumns: []string{
			"name", "description", "headquarters", "homepage",
			"logo_path", "origin_country", "parent_company",
		},
	}
	for _, c := range records {
		var parentID *int64
		if c.ParentCompany != nil {
			parentID = &c.ParentCompany.ID
		}
		spec.Rows = append(spec.Rows, []any{
			c.ID, c.Name, c.Description, c.Headquarters, c.Homepage,
			c.LogoPath, c.OriginCountry, parentID,
		})
	}
	return []database.Upsert{spec}
}
