package entities

import (
	"time"

	"catalogstats/internal/domain"
)

// Title is one catalog record, a film or a series.
type Title struct {
	ShowID      string
	Name        string
	Kind        domain.Kind
	Director    string
	Cast        string
	Country     string
	DateAdded   time.Time // zero = unknown
	ReleaseYear int       // 0 = unknown
	Rating      string
	Minutes     *int // films only
	Seasons     *int // series only
	ListedIn    string
	Description string
}

// Reference is a row of one of the lookup tables (content types, countries, ratings).
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
