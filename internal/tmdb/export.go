// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// maxExportLineSize bounds a single NDJSON line in a daily export file.
const maxExportLineSize = 1024 * 1024 // 1MB

// ExportIDs downloads the daily id export for one entity type and returns
// the parsed id lines.
//
// exportType is the file prefix TMDB publishes, e.g. "movie", "person",
// "collection", "production_company", "keyword"; the file is
// {base}/{exportType}_ids_{MM_DD_YYYY}.json.gz for the given date.
//
// The compressed download and its decompressed form are staged as temporary
// files and removed on every return path, success or failure. A 404 (the
// export for that date is not yet published) returns KindNotFound without
// creating any temporary files.
func (c *Client) ExportIDs(ctx context.Context, exportType string, date time.Time) ([]tmdb.ExportLine, error) {
	name := "export_" + exportType
	fileURL := fmt.Sprintf("%s/%s_ids_%s.json.gz", c.exportBaseURL, exportType, date.Format("01_02_2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, http.NoBody)
	if err != nil {
		return nil, newError(KindUpstream, name, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ExportDownloadsTotal.WithLabelValues(exportType, "error").Inc()
		return nil, newError(KindUpstream, name, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.ExportDownloadsTotal.WithLabelValues(exportType, "not_found").Inc()
		return nil, newError(KindNotFound, name, fmt.Errorf("export not published for %s", date.Format("2006-01-02")))
	case resp.StatusCode != http.StatusOK:
		metrics.ExportDownloadsTotal.WithLabelValues(exportType, "error").Inc()
		return nil, newError(KindUpstream, name,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readBodyForError(resp.Body)))
	}

	lines, err := c.stageAndParse(exportType, resp.Body)
	if err != nil {
		metrics.ExportDownloadsTotal.WithLabelValues(exportType, "error").Inc()
		return nil, err
	}

	metrics.ExportDownloadsTotal.WithLabelValues(exportType, "success").Inc()
	metrics.ExportLinesTotal.WithLabelValues(exportType).Add(float64(len(lines)))
	logging.Debug().
		Str("export_type", exportType).
		Int("lines", len(lines)).
		Msg("Parsed daily id export")

	return lines, nil
}

// stageAndParse writes the compressed body to a temporary file, decompresses
// it to a second temporary file, and parses the NDJSON lines. Both files are
// removed before return on all paths.
func (c *Client) stageAndParse(exportType string, body io.Reader) ([]tmdb.ExportLine, error) {
	name := "export_" + exportType

	gzFile, err := os.CreateTemp("", exportType+"_ids_*.json.gz")
	if err != nil {
		return nil, newError(KindUpstream, name, fmt.Errorf("failed to stage download: %w", err))
	}
	defer func() {
		_ = gzFile.Close()
		_ = os.Remove(gzFile.Name())
	}()

	if _, err := io.Copy(gzFile, body); err != nil {
		return nil, newError(KindUpstream, name, fmt.Errorf("download interrupted: %w", err))
	}
	if _, err := gzFile.Seek(0, io.SeekStart); err != nil {
		return nil, newError(KindUpstream, name, fmt.Errorf("failed to rewind staged download: %w", err))
	}

	rawFile, err := os.CreateTemp("", exportType+"_ids_*.json")
	if err != nil {
		return nil, newError(KindUpstream, name, fmt.Errorf("failed to stage decompressed export: %w", err))
	}
	defer func() {
		_ = rawFile.Close()
		_ = os.Remove(rawFile.Name())
	}()

	gz, err := gzip.NewReader(gzFile)
	if err != nil {
		return nil, newError(KindDecode, name, fmt.Errorf("not a gzip file: %w", err))
	}
	if _, err := io.Copy(rawFile, gz); err != nil {
		_ = gz.Close()
		return nil, newError(KindDecode, name, fmt.Errorf("decompression failed: %w", err))
	}
	if err := gz.Close(); err != nil {
		return nil, newError(KindDecode, name, fmt.Errorf("decompression failed: %w", err))
	}
	if _, err := rawFile.Seek(0, io.SeekStart); err != nil {
		return nil, newError(KindUpstream, name, fmt.Errorf("failed to rewind decompressed export: %w", err))
	}

	var lines []tmdb.ExportLine
	scanner := bufio.NewScanner(rawFile)
	scanner.Buffer(make([]byte, 64*1024), maxExportLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var line tmdb.ExportLine
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, newError(KindDecode, name, fmt.Errorf("malformed line %d: %w", lineNo, err))
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, newError(KindDecode, name, fmt.Errorf("failed to scan export: %w", err))
	}

	return lines, nil
}
