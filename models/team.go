package models

import "database/sql"

// Teams table and export column titles
const (
	TeamsTable = "teams"

	ColTeamNumber = "Team Number"
	ColAdvisor    = "Advisor"
	ColProblem    = "Problem"
	ColRanking    = "Ranking"
)

// TeamColumns is the export header for Teams.csv, in order.
var TeamColumns = []string{ColTeamNumber, ColAdvisor, ColProblem, ColRanking, ColInstitutionID}

// Team represents the teams table. ID is the contest team number.
type Team struct {
	ID            int            `db:"id" json:"id"`
	Advisor       string         `db:"advisor" json:"advisor"`
	Problem       sql.NullString `db:"problem" json:"problem,omitempty"`
	Ranking       string         `db:"ranking" json:"ranking"`
	InstitutionID int            `db:"institution_id" json:"institution_id"`
}
