// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package metrics provides Prometheus instrumentation for the sync pipeline.
//
// Metrics are exposed on the optional ops listener (/metrics) and cover:
//   - TMDB API request counts and latency
//   - Daily export download outcomes
//   - Per-entity reconciliation results (deleted, upserted, duration)
//   - Chunk flush failures (the fault-isolation boundary)
//   - Database transaction performance
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TMDB API Metrics
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"endpoint", "status"},
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "TMDB API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	ExportDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_export_downloads_total",
			Help: "Total number of daily id export downloads",
		},
		[]string{"entity", "result"}, // result: "success", "not_found", "error"
	)

	ExportLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_export_lines_total",
			Help: "Total number of id lines parsed from daily exports",
		},
		[]string{"entity"},
	)

	// Reconciliation Metrics
	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of one entity reconciliation pass in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 900, 3600},
		},
		[]string{"entity"},
	)

	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total entity reconciliation passes by outcome",
		},
		[]string{"entity", "result"}, // result: "success", "failure"
	)

	SyncDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_deleted_rows_total",
			Help: "Rows deleted because the id vanished upstream",
		},
		[]string{"entity"},
	)

	SyncUpsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_upserted_records_total",
			Help: "Records upserted into the destination",
		},
		[]string{"entity"},
	)

	SyncFetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_fetch_failures_total",
			Help: "Detail fetches dropped from the current cycle",
		},
		[]string{"entity"},
	)

	ChunkFlushFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_chunk_flush_failures_total",
			Help: "Chunk flush transactions rolled back",
		},
		[]string{"entity"},
	)

	SyncLastSuccessTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful pass per entity",
		},
		[]string{"entity"},
	)

	// Database Metrics
	DBTxDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_transaction_duration_seconds",
			Help:    "Duration of destination transactions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "upsert", "delete", "read_ids", "sync_log"
	)

	DBTxErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_transaction_errors_total",
			Help: "Destination transactions that rolled back",
		},
		[]string{"operation"},
	)
)

// ObserveTMDBRequest records one API request outcome.
func ObserveTMDBRequest(endpoint, status string, d time.Duration) {
	TMDBRequestsTotal.WithLabelValues(endpoint, status).Inc()
	TMDBRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordSyncOutcome records the terminal state of one entity pass.
func RecordSyncOutcome(entity string, d time.Duration, success bool) {
	SyncDuration.WithLabelValues(entity).Observe(d.Seconds())
	if success {
		SyncRunsTotal.WithLabelValues(entity, "success").Inc()
		SyncLastSuccessTimestamp.WithLabelValues(entity).SetToCurrentTime()
		return
	}
	SyncRunsTotal.WithLabelValues(entity, "failure").Inc()
}

// ObserveDBTx records one destination transaction.
func ObserveDBTx(operation string, d time.Duration, err error) {
	DBTxDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		DBTxErrors.WithLabelValues(operation).Inc()
	}
}
