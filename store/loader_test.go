package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/mcm_db/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "contest.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fixture() ([]models.Institution, []models.Team) {
	institutions := []models.Institution{
		{ID: 1, Name: "Massachusetts Inst. Of Tech", City: "Cambridge", StateProvince: models.NullString("Ma"), Country: models.NullString("Usa")},
		{ID: 2, Name: "Oxford", City: "Oxford"},
	}
	teams := []models.Team{
		{ID: 1001, Advisor: "J. Smith", Problem: models.NullString("A"), Ranking: "Outstanding Winner", InstitutionID: 1},
		{ID: 1002, Advisor: "K. Lee", Problem: models.NullString("B"), Ranking: "Meritorious", InstitutionID: 1},
		{ID: 1003, Advisor: "P. Jones", Ranking: "Finalist", InstitutionID: 2},
	}
	return institutions, teams
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mysql"})
	assert.Error(t, err)
}

func TestLoadInsertsEntities(t *testing.T) {
	db := openTestDB(t)
	institutions, teams := fixture()

	result, err := NewLoader(db).Load(context.Background(), institutions, teams)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{InstitutionsInserted: 2, TeamsInserted: 3}, result)

	var inst models.Institution
	err = db.QueryRow(`SELECT id, name, city, state_province, country FROM institutions WHERE id = 2`).
		Scan(&inst.ID, &inst.Name, &inst.City, &inst.StateProvince, &inst.Country)
	require.NoError(t, err)
	assert.Equal(t, institutions[1], inst)

	var team models.Team
	err = db.QueryRow(`SELECT id, advisor, problem, ranking, institution_id FROM teams WHERE id = 1003`).
		Scan(&team.ID, &team.Advisor, &team.Problem, &team.Ranking, &team.InstitutionID)
	require.NoError(t, err)
	assert.Equal(t, teams[2], team)
}

func TestLoadTwiceSkipsEverything(t *testing.T) {
	db := openTestDB(t)
	institutions, teams := fixture()
	loader := NewLoader(db)

	_, err := loader.Load(context.Background(), institutions, teams)
	require.NoError(t, err)

	result, err := loader.Load(context.Background(), institutions, teams)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{InstitutionsSkipped: 2, TeamsSkipped: 3}, result)
	assert.Equal(t, 2, countRows(t, db, models.InstitutionsTable))
	assert.Equal(t, 3, countRows(t, db, models.TeamsTable))
}

func TestLoadDoesNotMergeChangedValues(t *testing.T) {
	db := openTestDB(t)
	institutions, teams := fixture()
	loader := NewLoader(db)

	_, err := loader.Load(context.Background(), institutions, teams)
	require.NoError(t, err)

	teams[0].Advisor = "Someone Else"
	result, err := loader.Load(context.Background(), institutions, teams[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, result.TeamsSkipped)

	var advisor string
	require.NoError(t, db.QueryRow(`SELECT advisor FROM teams WHERE id = 1001`).Scan(&advisor))
	assert.Equal(t, "J. Smith", advisor)
}

func TestLoadRemapsInstitutionFoundByName(t *testing.T) {
	db := openTestDB(t)
	institutions, teams := fixture()
	loader := NewLoader(db)

	_, err := loader.Load(context.Background(), institutions, teams)
	require.NoError(t, err)

	// A later file where Oxford was seen first.
	result, err := loader.Load(context.Background(),
		[]models.Institution{
			{ID: 1, Name: "OXFORD", City: "Oxford"},
			{ID: 2, Name: "Rice University", City: "Houston"},
		},
		[]models.Team{
			{ID: 2001, Advisor: "A", Ranking: "Finalist", InstitutionID: 1},
		})
	require.ErrorIs(t, err, ErrIDConflict)
	assert.Equal(t, LoadResult{}, result)
	assert.Equal(t, 2, countRows(t, db, models.InstitutionsTable))

	result, err = loader.Load(context.Background(),
		[]models.Institution{
			{ID: 1, Name: "OXFORD", City: "Oxford"},
			{ID: 3, Name: "Rice University", City: "Houston"},
		},
		[]models.Team{
			{ID: 2001, Advisor: "A", Ranking: "Finalist", InstitutionID: 1},
			{ID: 2002, Advisor: "B", Ranking: "Finalist", InstitutionID: 3},
		})
	require.NoError(t, err)
	assert.Equal(t, LoadResult{InstitutionsInserted: 1, InstitutionsSkipped: 1, TeamsInserted: 2}, result)

	var institutionID int
	require.NoError(t, db.QueryRow(`SELECT institution_id FROM teams WHERE id = 2001`).Scan(&institutionID))
	assert.Equal(t, 2, institutionID)
}

func TestLoadRollsBackOnForeignKeyViolation(t *testing.T) {
	db := openTestDB(t)
	institutions, _ := fixture()

	_, err := NewLoader(db).Load(context.Background(), institutions, []models.Team{
		{ID: 1, Advisor: "A", Ranking: "Finalist", InstitutionID: 99},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrIDConflict))
	assert.Equal(t, 0, countRows(t, db, models.InstitutionsTable))
}
