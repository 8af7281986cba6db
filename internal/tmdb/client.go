// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
client.go - Core TMDB API Client

This file provides the Client struct and HTTP communication layer for the
TMDB REST API (api.themoviedb.org/3).

Client Features:
  - HTTP client with configurable timeout
  - Round-robin API key rotation across the configured key pool
  - JSON response parsing with typed response structs
  - Context support for cancellation and timeouts
  - Failure classification (not found vs upstream vs decode)

Endpoint coverage:
  - Configuration: Languages, Countries
  - Reference: Genres, Keyword
  - Detail: Collection, Company, Person, Movie (with appended sub-resources)
  - Incremental: Changes (paginated "changed ids in window" feed)

Related Files:
  - export.go: daily gzip NDJSON id export downloads
  - keys.go: API key rotation
  - errors.go: failure classification
*/

//nolint:staticcheck // File documentation, not package doc
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models/tmdb"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
// This prevents unbounded memory allocation when reading large error responses
const maxErrorBodySize = 64 * 1024 // 64KB

// statusNotFound is TMDB's application-level status_code for a missing resource.
const statusNotFound = 34

// readBodyForError reads the response body for error reporting (max 64KB)
// Returns the body content or a placeholder message if reading fails
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// Client handles communication with the TMDB HTTP API.
//
// Every request draws the next key from the ring, so concurrent fetch workers
// naturally spread load across the configured key pool.
//
// Thread Safety: Safe for concurrent use. Each request creates its own HTTP request.
type Client struct {
	baseURL       string
	exportBaseURL string
	keys          *KeyRing
	client        *http.Client
}

// NewClient creates a TMDB API client from the provided configuration.
func NewClient(cfg *config.TMDBConfig) (*Client, error) {
	ring, err := NewKeyRing(cfg.APIKeys)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		exportBaseURL: cfg.ExportBaseURL,
		keys:          ring,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// makeRequest is a generic helper that handles common TMDB API request
// boilerplate. It builds the URL with the next API key in rotation, makes the
// request, checks HTTP status, and decodes the JSON response.
//
// Parameters:
//   - ctx: Context for cancellation and timeout support
//   - name: logical endpoint name for metrics and error messages
//   - path: URL path below the API base (e.g. "/movie/603")
//   - params: Additional URL parameters (without api_key which is added automatically)
//   - result: Pointer to response struct that will be populated
//
// HTTP 404 and TMDB's success:false envelope both classify as KindNotFound;
// other non-200 statuses and transport faults classify as KindUpstream.
func (c *Client) makeRequest(ctx context.Context, name, path string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.keys.Next())

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return newError(KindUpstream, name, fmt.Errorf("failed to create request: %w", err))
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveTMDBRequest(name, "transport_error", time.Since(start))
		return newError(KindUpstream, name, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.ObserveTMDBRequest(name, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return newError(KindNotFound, name, fmt.Errorf("HTTP 404: %s", readBodyForError(resp.Body)))
	case resp.StatusCode != http.StatusOK:
		return newError(KindUpstream, name,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readBodyForError(resp.Body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return newError(KindDecode, name, fmt.Errorf("failed to decode response: %w", err))
	}

	// Some deployments answer HTTP 200 with a failure envelope.
	if env, ok := result.(interface{ Failed() bool }); ok && env.Failed() {
		return c.envelopeError(name, result)
	}

	return nil
}

func (c *Client) envelopeError(name string, result any) error {
	type enveloped interface{ Envelope() *tmdb.ErrorEnvelope }
	if e, ok := result.(enveloped); ok {
		env := e.Envelope()
		kind := KindUpstream
		if env.StatusCode == statusNotFound {
			kind = KindNotFound
		}
		return newError(kind, name,
			fmt.Errorf("API failure %d: %s", env.StatusCode, env.StatusMessage))
	}
	return newError(KindUpstream, name, fmt.Errorf("API reported failure"))
}

// Languages fetches GET /configuration/languages. The listing is not
// locale-qualified.
func (c *Client) Languages(ctx context.Context) ([]tmdb.Language, error) {
	var out []tmdb.Language
	if err := c.makeRequest(ctx, "configuration_languages", "/configuration/languages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Countries fetches GET /configuration/countries in the requested locale.
// NativeName in each entry carries the locale-specific name.
func (c *Client) Countries(ctx context.Context, locale string) ([]tmdb.Country, error) {
	params := url.Values{}
	params.Set("language", locale)
	var out []tmdb.Country
	if err := c.makeRequest(ctx, "configuration_countries", "/configuration/countries", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Genres fetches GET /genre/{mediaType}/list in the requested locale.
// mediaType is "movie" or "tv".
func (c *Client) Genres(ctx context.Context, mediaType, locale string) ([]tmdb.Genre, error) {
	params := url.Values{}
	params.Set("language", locale)
	var out tmdb.GenreList
	path := fmt.Sprintf("/genre/%s/list", mediaType)
	if err := c.makeRequest(ctx, "genre_list", path, params, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// Collection fetches GET /collection/{id} in the requested locale.
func (c *Client) Collection(ctx context.Context, id int64, locale string) (*tmdb.Collection, error) {
	params := url.Values{}
	params.Set("language", locale)
	var out tmdb.Collection
	if err := c.makeRequest(ctx, "collection", fmt.Sprintf("/collection/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Company fetches GET /company/{id}. The endpoint is not locale-qualified.
func (c *Client) Company(ctx context.Context, id int64) (*tmdb.Company, error) {
	var out tmdb.Company
	if err := c.makeRequest(ctx, "company", fmt.Sprintf("/company/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Person fetches GET /person/{id} in the requested locale. Only the
// biography varies by locale.
func (c *Client) Person(ctx context.Context, id int64, locale string) (*tmdb.Person, error) {
	params := url.Values{}
	params.Set("language", locale)
	var out tmdb.Person
	if err := c.makeRequest(ctx, "person", fmt.Sprintf("/person/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Movie fetches GET /movie/{id} in the requested locale with the credits,
// keywords, and videos sub-resources appended, so one request yields
// everything movie decomposition needs for that locale.
func (c *Client) Movie(ctx context.Context, id int64, locale string) (*tmdb.Movie, error) {
	params := url.Values{}
	params.Set("language", locale)
	params.Set("append_to_response", "credits,keywords,videos")
	var out tmdb.Movie
	if err := c.makeRequest(ctx, "movie", fmt.Sprintf("/movie/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Changes fetches one page of GET /{entity}/changes for the given date
// window. entity is "movie" or "person". Dates format as YYYY-MM-DD.
func (c *Client) Changes(ctx context.Context, entity string, start, end time.Time, page int) (*tmdb.ChangesPage, error) {
	params := url.Values{}
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))
	params.Set("page", strconv.Itoa(page))
	var out tmdb.ChangesPage
	if err := c.makeRequest(ctx, "changes", fmt.Sprintf("/%s/changes", entity), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
