package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonsonwune/mcm_db/models"
)

// The DDL sticks to types and constraints shared by Postgres and SQLite.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + models.InstitutionsTable + ` (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		city TEXT NOT NULL,
		state_province TEXT,
		country TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ` + models.TeamsTable + ` (
		id INTEGER PRIMARY KEY,
		advisor TEXT NOT NULL,
		problem TEXT,
		ranking TEXT NOT NULL,
		institution_id INTEGER NOT NULL REFERENCES ` + models.InstitutionsTable + `(id)
	)`,
	`CREATE INDEX IF NOT EXISTS teams_institution_id_idx ON ` + models.TeamsTable + ` (institution_id)`,
}

// InitSchema creates the institutions and teams tables if needed and
// verifies that both can be queried.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error initializing schema: %w", err)
		}
	}

	tables := []string{models.InstitutionsTable, models.TeamsTable}
	for _, table := range tables {
		var count int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return fmt.Errorf("required table %s is not available: %w", table, err)
		}
	}

	return nil
}
