// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

// Collection is the payload of GET /collection/{id}, requested per locale.
// Overview, PosterPath, and Name vary with the requested locale;
// BackdropPath does not.
type Collection struct {
	ErrorEnvelope
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
}

// Company is the payload of GET /company/{id}. The endpoint is not
// locale-qualified; one fetch covers all destination rows.
type Company struct {
	ErrorEnvelope
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Headquarters  string         `json:"headquarters"`
	Homepage      string         `json:"homepage"`
	LogoPath      *string        `json:"logo_path"`
	OriginCountry string         `json:"origin_country"`
	ParentCompany *ParentCompany `json:"parent_company"`
}

// ParentCompany is the nested parent reference inside a Company payload.
type ParentCompany struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}
