package sqlite

import (
	"database/sql"

	"github.com/rpggio/brewlog/internal/domain/day"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// dateString brings a DATE column back to YYYY-MM-DD. The driver may hand
// back DATE columns as time values, which database/sql renders as RFC 3339.
// Values that don't parse are kept verbatim.
func dateString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	if t, ok := day.Parse(ns.String); ok {
		return day.Format(t)
	}
	return ns.String
}
