package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalogstats/internal/domain"
	"catalogstats/pkg/catalogdate"
)

// Dialect is the SQL flavour of the catalog store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDSN maps a DATABASE_URL onto a dialect and the driver-specific target:
// the URL itself for PostgreSQL, the file path for SQLite.
func ParseDSN(dsn string) (Dialect, string, error) {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", "", fmt.Errorf("database url %q: %w", dsn, domain.ErrUnsupportedDriver)
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return DialectPostgres, dsn, nil
	case "sqlite", "sqlite3":
		if rest == "" {
			return "", "", fmt.Errorf("database url %q: empty sqlite path", dsn)
		}
		return DialectSQLite, rest, nil
	default:
		return "", "", fmt.Errorf("database url scheme %q: %w", scheme, domain.ErrUnsupportedDriver)
	}
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// YearOf extracts the calendar year of a DATE column as an integer.
func (d Dialect) YearOf(column string) string {
	if d == DialectPostgres {
		return "CAST(EXTRACT(YEAR FROM " + column + ") AS INTEGER)"
	}
	return "CAST(strftime('%Y', " + column + ") AS INTEGER)"
}

// DateArg converts t into the bind value the dialect stores in DATE columns.
// The zero time binds NULL.
func (d Dialect) DateArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	if d == DialectPostgres {
		return t
	}
	return catalogdate.FormatDate(t)
}
