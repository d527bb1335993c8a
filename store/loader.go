package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/nonsonwune/mcm_db/models"
)

// ErrIDConflict is returned when an institution's ID is already held by a
// differently named institution in the store.
var ErrIDConflict = errors.New("institution id already used by another institution")

// LoadResult counts inserted and skipped rows per table.
type LoadResult struct {
	InstitutionsInserted int
	InstitutionsSkipped  int
	TeamsInserted        int
	TeamsSkipped         int
}

// Loader inserts institutions and teams, skipping rows already present.
type Loader struct {
	db *sql.DB
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Load inserts institutions then teams in one transaction. An institution is
// a duplicate when one with the same name (case-insensitive) exists; teams
// are duplicates by team number. Duplicates are logged and skipped without
// merging field values, so loading the same entities twice inserts nothing.
// On error the transaction is rolled back and the result is zero.
func (l *Loader) Load(ctx context.Context, institutions []models.Institution, teams []models.Team) (LoadResult, error) {
	result, err := l.load(ctx, institutions, teams)
	if err != nil {
		return LoadResult{}, err
	}
	return result, nil
}

func (l *Loader) load(ctx context.Context, institutions []models.Institution, teams []models.Team) (LoadResult, error) {
	var result LoadResult

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Institutions skipped by name may already be stored under another ID.
	storedIDs := make(map[int]int, len(institutions))
	for _, inst := range institutions {
		storedID, found, err := findInstitution(ctx, tx, inst)
		if err != nil {
			return result, err
		}
		if found {
			log.Printf("Skipping duplicate institution %q (id %d)", inst.Name, storedID)
			storedIDs[inst.ID] = storedID
			result.InstitutionsSkipped++
			continue
		}
		if err := insertInstitution(ctx, tx, inst); err != nil {
			return result, err
		}
		storedIDs[inst.ID] = inst.ID
		result.InstitutionsInserted++
	}

	for _, team := range teams {
		exists, err := teamExists(ctx, tx, team.ID)
		if err != nil {
			return result, err
		}
		if exists {
			log.Printf("Skipping duplicate team %d", team.ID)
			result.TeamsSkipped++
			continue
		}
		if id, ok := storedIDs[team.InstitutionID]; ok {
			team.InstitutionID = id
		}
		if err := insertTeam(ctx, tx, team); err != nil {
			return result, err
		}
		result.TeamsInserted++
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("error committing transaction: %w", err)
	}
	return result, nil
}

func findInstitution(ctx context.Context, tx *sql.Tx, inst models.Institution) (int, bool, error) {
	var id int
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM institutions WHERE LOWER(name) = LOWER($1)`, inst.Name).Scan(&id)
	switch {
	case err == nil:
		return id, true, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("error looking up institution %q: %w", inst.Name, err)
	}

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM institutions WHERE id = $1`, inst.ID).Scan(&name)
	switch {
	case err == nil:
		return 0, false, fmt.Errorf("%w: id %d is %q, not %q", ErrIDConflict, inst.ID, name, inst.Name)
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("error looking up institution %d: %w", inst.ID, err)
	}
}

func insertInstitution(ctx context.Context, tx *sql.Tx, inst models.Institution) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO institutions (id, name, city, state_province, country)
		VALUES ($1, $2, $3, $4, $5)`,
		inst.ID, inst.Name, inst.City, inst.StateProvince, inst.Country)
	if err != nil {
		return fmt.Errorf("error inserting institution %d: %w", inst.ID, err)
	}
	return nil
}

func teamExists(ctx context.Context, tx *sql.Tx, id int) (bool, error) {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE id = $1`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("error looking up team %d: %w", id, err)
	}
	return count > 0, nil
}

func insertTeam(ctx context.Context, tx *sql.Tx, team models.Team) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO teams (id, advisor, problem, ranking, institution_id)
		VALUES ($1, $2, $3, $4, $5)`,
		team.ID, team.Advisor, team.Problem, team.Ranking, team.InstitutionID)
	if err != nil {
		return fmt.Errorf("error inserting team %d: %w", team.ID, err)
	}
	return nil
}
