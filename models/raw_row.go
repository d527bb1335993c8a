package models

import (
	"database/sql"
	"strings"
)

// ColInstitution is the canonical name of the input column holding the raw
// institution text once the header has been resolved.
const ColInstitution = "Institution"

// RawRow is one record of the contest export as read from the input table.
// Optional cells that were empty are left invalid.
type RawRow struct {
	Line          int
	Institution   string
	City          string
	StateProvince sql.NullString
	Country       sql.NullString
	TeamNumber    string
	Advisor       string
	Problem       sql.NullString
	Ranking       string
}

// NullString wraps s, treating blank text as absent.
func NullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// StringOr returns the wrapped value or fallback when absent.
func StringOr(s sql.NullString, fallback string) string {
	if s.Valid {
		return s.String
	}
	return fallback
}
