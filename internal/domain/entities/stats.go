package entities

import "catalogstats/internal/domain"

// TitleDuration is a title with its raw running length.
type TitleDuration struct {
	Name        string
	ReleaseYear int
	Rating      string
	Kind        domain.Kind
	Minutes     *int
	Seasons     *int
}

type CountryCount struct {
	Country string
	Count   int64
}

// RatingStat holds the number of titles for a rating and the release year
// with the most titles for it (0 when no title has a release year).
type RatingStat struct {
	Rating   string
	Count    int64
	PeakYear int
}

type YearCount struct {
	Year  int
	Count int64
}

// CatalogSummary is the page header: overall counts and the longest series.
type CatalogSummary struct {
	Titles     int64 `json:"titles"`
	Films      int64 `json:"films"`
	Series     int64 `json:"series"`
	MaxSeasons *int  `json:"max_seasons,omitempty"`
}
