// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"fmt"
	"strings"
	"time"
)

// syncEntityNames lists the valid entity types, in dependency order.
// Movies must come last: their association rows reference every other type.
var syncEntityNames = []string{
	"language",
	"country",
	"genre",
	"keyword",
	"collection",
	"company",
	"person",
	"movie",
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDatabase validates the Postgres connection settings
func (c *Config) validateDatabase() error {
	if c.Database.ConnString == "" {
		return fmt.Errorf("POSTGRES_CONNECTION_STRING is required")
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("DATABASE_MAX_CONNS must not be negative, got %d", c.Database.MaxConns)
	}
	return nil
}

// validateTMDB validates API access settings
func (c *Config) validateTMDB() error {
	if len(c.TMDB.APIKeys) == 0 {
		return fmt.Errorf("TMDB_API_KEYS is required (comma-separated list)")
	}
	for i, key := range c.TMDB.APIKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("TMDB_API_KEYS entry %d is empty", i)
		}
	}
	if !strings.HasPrefix(c.TMDB.BaseURL, "http://") && !strings.HasPrefix(c.TMDB.BaseURL, "https://") {
		return fmt.Errorf("TMDB_BASE_URL must start with http:// or https://, got %q", c.TMDB.BaseURL)
	}
	if !strings.HasPrefix(c.TMDB.ExportBaseURL, "http://") && !strings.HasPrefix(c.TMDB.ExportBaseURL, "https://") {
		return fmt.Errorf("TMDB_EXPORT_BASE_URL must start with http:// or https://, got %q", c.TMDB.ExportBaseURL)
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %s", c.TMDB.Timeout)
	}
	return nil
}

// validateSync validates reconciliation tuning
func (c *Config) validateSync() error {
	if c.Sync.ChunkSize <= 0 {
		return fmt.Errorf("SYNC_CHUNK_SIZE must be positive, got %d", c.Sync.ChunkSize)
	}
	if c.Sync.Workers <= 0 {
		return fmt.Errorf("SYNC_WORKERS must be positive, got %d", c.Sync.Workers)
	}
	if c.Sync.FlushPages <= 0 {
		return fmt.Errorf("SYNC_FLUSH_PAGES must be positive, got %d", c.Sync.FlushPages)
	}
	if c.Sync.RunDate != "" {
		if _, err := time.Parse("2006-01-02", c.Sync.RunDate); err != nil {
			return fmt.Errorf("SYNC_RUN_DATE must be YYYY-MM-DD, got %q", c.Sync.RunDate)
		}
	}
	for _, e := range c.Sync.Entities {
		if !validEntityName(e) {
			return fmt.Errorf("SYNC_ENTITIES contains unknown entity %q (valid: %s)",
				e, strings.Join(syncEntityNames, ", "))
		}
	}
	return nil
}

// validateMetrics validates the ops listener settings (only if enabled)
func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 1 and 65535, got %d", c.Metrics.Port)
	}
	return nil
}

// validateLogging validates the logging settings
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func validEntityName(name string) bool {
	for _, e := range syncEntityNames {
		if e == name {
			return true
		}
	}
	return false
}

// EntityNames returns the configured entity subset, or all entity types in
// dependency order when no subset is configured.
func (c *Config) EntityNames() []string {
	if len(c.Sync.Entities) == 0 {
		return append([]string(nil), syncEntityNames...)
	}
	// Preserve dependency order regardless of how the subset was written.
	ordered := make([]string, 0, len(c.Sync.Entities))
	for _, e := range syncEntityNames {
		for _, want := range c.Sync.Entities {
			if e == want {
				ordered = append(ordered, e)
				break
			}
		}
	}
	return ordered
}

// RunDate returns the export date for this run: the configured override, or
// the current UTC day.
func (c *Config) RunDate(now time.Time) time.Time {
	if c.Sync.RunDate != "" {
		// Validated at load time.
		d, _ := time.Parse("2006-01-02", c.Sync.RunDate)
		return d
	}
	return now.UTC().Truncate(24 * time.Hour)
}
