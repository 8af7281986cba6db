// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

// Person is the payload of GET /person/{id}, requested per locale.
// Only Biography varies with the requested locale.
type Person struct {
	ErrorEnvelope
	ID                 int64    `json:"id"`
	Adult              bool     `json:"adult"`
	AlsoKnownAs        []string `json:"also_known_as"`
	Biography          string   `json:"biography"`
	Birthday           *string  `json:"birthday"` // YYYY-MM-DD or null
	Deathday           *string  `json:"deathday"` // YYYY-MM-DD or null
	Gender             int      `json:"gender"`
	Homepage           *string  `json:"homepage"`
	IMDBID             *string  `json:"imdb_id"`
	KnownForDepartment string   `json:"known_for_department"`
	Name               string   `json:"name"`
	PlaceOfBirth       *string  `json:"place_of_birth"`
	Popularity         float64  `json:"popularity"`
	ProfilePath        *string  `json:"profile_path"`
}
