// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

// Language is one entry of GET /configuration/languages.
type Language struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"` // name in the language itself, may be empty
}

// Country is one entry of GET /configuration/countries. NativeName carries
// the name in the locale the listing was requested with.
type Country struct {
	ISO31661    string `json:"iso_3166_1"`
	EnglishName string `json:"english_name"`
	NativeName  string `json:"native_name"`
}

// GenreList is the payload of GET /genre/{movie|tv}/list.
type GenreList struct {
	ErrorEnvelope
	Genres []Genre `json:"genres"`
}

// Genre is a single genre in a requested locale.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Keyword is a single keyword; keywords carry no translations.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
