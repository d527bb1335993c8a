package models

import "database/sql"

// Institutions table and export column titles
const (
	InstitutionsTable = "institutions"

	ColInstitutionID   = "Institution ID"
	ColInstitutionName = "Institution Name"
	ColCity            = "City"
	ColStateProvince   = "State/Province"
	ColCountry         = "Country"
)

// InstitutionColumns is the export header for Institutions.csv, in order.
var InstitutionColumns = []string{ColInstitutionID, ColInstitutionName, ColCity, ColStateProvince, ColCountry}

// Institution represents the institutions table
type Institution struct {
	ID            int            `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	City          string         `db:"city" json:"city"`
	StateProvince sql.NullString `db:"state_province" json:"state_province,omitempty"`
	Country       sql.NullString `db:"country" json:"country,omitempty"`
}
