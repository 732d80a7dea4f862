package domain

import "strings"

// Kind is the content type of a catalog title as stored in content_types.name.
type Kind string

const (
	KindMovie  Kind = "Movie"
	KindSeries Kind = "TV Show"
)

// ParseKind accepts the content type spelling used by the catalog dump.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return KindMovie, nil
	case "tv show":
		return KindSeries, nil
	default:
		return "", ErrUnknownKind
	}
}
