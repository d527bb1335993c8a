// Package report runs the fixed contest queries against a loaded store and
// renders the results.
package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nonsonwune/mcm_db/models"
)

// ErrNoInstitutions is returned by MeanTeamsPerInstitution on an empty store.
var ErrNoInstitutions = errors.New("no institutions loaded")

// Normalized values the queries filter on.
const (
	RankingOutstandingWinner = "Outstanding Winner"
	RankingFinalist          = "Finalist"
	RankingMeritorious       = "Meritorious"
	CountryUSA               = "Usa"
)

// USARankings are the rankings counted for USA teams.
var USARankings = []string{RankingOutstandingWinner, RankingFinalist, RankingMeritorious}

// InstitutionCount is an institution name with its number of teams.
type InstitutionCount struct {
	Name  string `json:"name"`
	Teams int    `json:"teams"`
}

// Report holds the results of all four queries.
type Report struct {
	RunID              string             `json:"run_id"`
	GeneratedAt        time.Time          `json:"generated_at"`
	Institutions       int                `json:"institutions"`
	Teams              int                `json:"teams"`
	HasData            bool               `json:"has_data"`
	MeanTeams          float64            `json:"mean_teams"`
	TeamCounts         []InstitutionCount `json:"team_counts"`
	OutstandingWinners []string           `json:"outstanding_winners"`
	USATeams           []int              `json:"usa_teams"`
}

// Engine runs read-only queries over the institutions and teams tables.
type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Run executes every query and stamps the report with runID.
func (e *Engine) Run(ctx context.Context, runID string) (*Report, error) {
	report := &Report{RunID: runID, GeneratedAt: time.Now()}

	var err error
	if report.Institutions, err = e.count(ctx, models.InstitutionsTable); err != nil {
		return nil, err
	}
	if report.Teams, err = e.count(ctx, models.TeamsTable); err != nil {
		return nil, err
	}

	report.MeanTeams, err = meanTeams(report.Teams, report.Institutions)
	switch {
	case err == nil:
		report.HasData = true
	case !errors.Is(err, ErrNoInstitutions):
		return nil, err
	}

	if report.TeamCounts, err = e.TeamCounts(ctx); err != nil {
		return nil, err
	}
	if report.OutstandingWinners, err = e.OutstandingWinners(ctx); err != nil {
		return nil, err
	}
	if report.USATeams, err = e.USATeams(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

// MeanTeamsPerInstitution returns teams / institutions, or ErrNoInstitutions.
func (e *Engine) MeanTeamsPerInstitution(ctx context.Context) (float64, error) {
	institutions, err := e.count(ctx, models.InstitutionsTable)
	if err != nil {
		return 0, err
	}
	teams, err := e.count(ctx, models.TeamsTable)
	if err != nil {
		return 0, err
	}
	return meanTeams(teams, institutions)
}

func meanTeams(teams, institutions int) (float64, error) {
	if institutions == 0 {
		return 0, ErrNoInstitutions
	}
	return float64(teams) / float64(institutions), nil
}

// TeamCounts lists institutions by descending team count, ties by name.
func (e *Engine) TeamCounts(ctx context.Context) ([]InstitutionCount, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT i.name, COUNT(t.id) AS team_count
		FROM institutions i
		LEFT JOIN teams t ON t.institution_id = i.id
		GROUP BY i.id, i.name
		ORDER BY team_count DESC, i.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error getting team counts: %w", err)
	}
	defer rows.Close()

	counts := make([]InstitutionCount, 0)
	for rows.Next() {
		var c InstitutionCount
		if err := rows.Scan(&c.Name, &c.Teams); err != nil {
			return nil, fmt.Errorf("error scanning team count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// OutstandingWinners lists, alphabetically, institutions with at least one
// Outstanding Winner team.
func (e *Engine) OutstandingWinners(ctx context.Context) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT DISTINCT i.name
		FROM institutions i
		JOIN teams t ON t.institution_id = i.id
		WHERE t.ranking = $1
		ORDER BY i.name ASC`, RankingOutstandingWinner)
	if err != nil {
		return nil, fmt.Errorf("error getting outstanding winners: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning institution name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// USATeams lists team numbers from USA institutions ranked Outstanding
// Winner, Finalist or Meritorious, ascending.
func (e *Engine) USATeams(ctx context.Context) ([]int, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT t.id
		FROM teams t
		JOIN institutions i ON i.id = t.institution_id
		WHERE i.country = $1 AND t.ranking IN ($2, $3, $4)
		ORDER BY t.id ASC`,
		CountryUSA, USARankings[0], USARankings[1], USARankings[2])
	if err != nil {
		return nil, fmt.Errorf("error getting USA teams: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning team number: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (e *Engine) count(ctx context.Context, table string) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	if err := e.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}
