// Cinegraph - TMDB Metadata Synchronization for Postgres
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package tmdb

// Movie is the payload of GET /movie/{id} with
// append_to_response=credits,keywords,videos, requested per locale.
// Overview, PosterPath, Tagline, Title, and the video listing vary with the
// requested locale; the remaining fields are locale-stable and read from the
// English payload at decompose time.
type Movie struct {
	ErrorEnvelope
	ID                  int64             `json:"id"`
	Adult               bool              `json:"adult"`
	BackdropPath        *string           `json:"backdrop_path"`
	BelongsToCollection *CollectionRef    `json:"belongs_to_collection"`
	Budget              int64             `json:"budget"`
	Genres              []Genre           `json:"genres"`
	Homepage            string            `json:"homepage"`
	IMDBID              *string           `json:"imdb_id"`
	OriginalLanguage    string            `json:"original_language"`
	OriginalTitle       string            `json:"original_title"`
	Overview            string            `json:"overview"`
	Popularity          float64           `json:"popularity"`
	PosterPath          *string           `json:"poster_path"`
	ProductionCompanies []CompanyRef      `json:"production_companies"`
	ProductionCountries []CountryRef      `json:"production_countries"`
	ReleaseDate         string            `json:"release_date"` // YYYY-MM-DD, may be ""
	Revenue             int64             `json:"revenue"`
	Runtime             int               `json:"runtime"`
	SpokenLanguages     []SpokenLanguage  `json:"spoken_languages"`
	Status              string            `json:"status"`
	Tagline             string            `json:"tagline"`
	Title               string            `json:"title"`
	VoteAverage         float64           `json:"vote_average"`
	VoteCount           int64             `json:"vote_count"`
	Credits             *Credits          `json:"credits"`
	Keywords            *KeywordsEnvelope `json:"keywords"`
	Videos              *VideosEnvelope   `json:"videos"`
}

// CollectionRef is the nested belongs_to_collection reference.
type CollectionRef struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
}

// CompanyRef is a production company reference inside a movie payload.
type CompanyRef struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

// CountryRef is a production country reference inside a movie payload.
type CountryRef struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// SpokenLanguage is a spoken language reference inside a movie payload.
type SpokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Credits is the appended credits sub-resource.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is one cast credit. Order is the billing position.
type CastMember struct {
	ID        int64  `json:"id"` // person id
	CreditID  string `json:"credit_id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	ID         int64  `json:"id"` // person id
	CreditID   string `json:"credit_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

// KeywordsEnvelope is the appended keywords sub-resource.
type KeywordsEnvelope struct {
	Keywords []Keyword `json:"keywords"`
}

// VideosEnvelope is the appended videos sub-resource.
type VideosEnvelope struct {
	Results []Video `json:"results"`
}

// Video is one trailer/teaser/clip entry.
type Video struct {
	ID       string `json:"id"`
	ISO6391  string `json:"iso_639_1"`
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
	Key      string `json:"key"`
	Site     string `json:"site"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}
