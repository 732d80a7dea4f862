package database

import (
	"database/sql"
	"strings"
)

// nullIntToPtr returns nil for SQL NULL.
func nullIntToPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// ptrArg binds nil for a nil pointer.
func ptrArg(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// stringArg binds NULL for blank strings.
func stringArg(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// yearArg binds NULL for an unknown (zero) year.
func yearArg(y int) any {
	if y <= 0 {
		return nil
	}
	return y
}

// idArg binds NULL for a missing lookup row.
func idArg(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
