package domain

import "errors"

// Domain errors.
var (
	ErrInvalidRecord     = errors.New("invalid catalog record")
	ErrUnknownKind       = errors.New("unknown content type")
	ErrInvalidHeader     = errors.New("unexpected catalog CSV header")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrCatalogEmpty      = errors.New("catalog is empty")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidRecord, "invalid_record"},
	{ErrUnknownKind, "unknown_kind"},
	{ErrInvalidHeader, "invalid_header"},
	{ErrUnsupportedDriver, "unsupported_driver"},
	{ErrCatalogEmpty, "catalog_empty"},
}

// Code returns the stable code of the first domain error wrapped by err,
// or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
