package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/mcm_db/models"
)

const contestCSV = "Institution (raw),City,State/Province,Country,Team Number,Advisor,Problem,Ranking\n" +
	"\"Massachusetts Inst. of Tech, Cambridge\",Cambridge,MA,USA,1001,J. Smith,A,Outstanding Winner\n" +
	"MASSACHUSETTS INST. OF TECH,Cambridge,MA,USA,1002,K. Lee,B,Meritorious\n" +
	"Tsinghua University,Beijing,,China,1003,W. Zhang,,Finalist\n"

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadTableRows(t *testing.T) {
	table, err := ReadTable(strings.NewReader(contestCSV))
	require.NoError(t, err)
	require.Len(t, table.Records, 3)
	assert.Equal(t, []int{2, 3, 4}, table.Lines)

	index, err := ResolveColumns(table.Headers)
	require.NoError(t, err)
	rows := table.Rows(index)

	assert.Equal(t, "Massachusetts Inst. of Tech, Cambridge", rows[0].Institution)
	assert.Equal(t, "1001", rows[0].TeamNumber)
	assert.Equal(t, "A", rows[0].Problem.String)
	assert.False(t, rows[2].StateProvince.Valid)
	assert.False(t, rows[2].Problem.Valid)
	assert.Equal(t, "China", rows[2].Country.String)
}

func TestReadTableWithoutProblemColumn(t *testing.T) {
	data := "Institution,City,State/Province,Country,Team Number,Advisor,Ranking\nRice,Houston,TX,USA,5,a,Finalist\n"
	table, err := ReadTable(strings.NewReader(data))
	require.NoError(t, err)

	index, err := ResolveColumns(table.Headers)
	require.NoError(t, err)
	rows := table.Rows(index)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Problem.Valid)
	assert.Equal(t, "Finalist", rows[0].Ranking)
}

func TestReadTableStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(contestCSV)...)
	table, err := ReadTable(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Institution (raw)", table.Headers[0])
}

func TestReadTableDecodesWindows1252(t *testing.T) {
	utf := "Institution,City,State/Province,Country,Team Number,Advisor,Ranking\n" +
		"Université de Montréal,Montréal,QC,Canada,7,a,Finalist\n"
	latin := []byte(strings.NewReplacer("é", "\xe9").Replace(utf))

	fromUTF, err := ReadTable(strings.NewReader(utf))
	require.NoError(t, err)
	fromLatin, err := ReadTable(bytes.NewReader(latin))
	require.NoError(t, err)

	assert.Equal(t, fromUTF.Records, fromLatin.Records)
	assert.Equal(t, "Université de Montréal", fromLatin.Records[0][0])
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestOpenTableErrors(t *testing.T) {
	_, err := OpenTable("results.xlsx")
	assert.True(t, errors.Is(err, ErrInvalidExtension))

	_, err = OpenTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, ErrFileNotFound))

	path := writeTemp(t, "empty.csv", nil)
	_, err = OpenTable(path)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestImportFile(t *testing.T) {
	path := writeTemp(t, "contest.csv", []byte(contestCSV))

	entities, err := ImportFile(ImportConfig{SourceFile: path})
	require.NoError(t, err)

	require.Len(t, entities.Institutions, 2)
	assert.Equal(t, "Massachusetts Inst. Of Tech", entities.Institutions[0].Name)
	assert.Equal(t, "Tsinghua University", entities.Institutions[1].Name)
	require.Len(t, entities.Teams, 3)
	assert.Equal(t, 2, entities.Teams[2].InstitutionID)
}

func TestImportRejectsSchemaBeforeRows(t *testing.T) {
	table, err := ReadTable(strings.NewReader("School,City\nRice,Houston\n"))
	require.NoError(t, err)

	entities, err := Import(table, ImportConfig{SourceFile: "bad.csv"})
	assert.Nil(t, entities)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Missing, models.ColInstitution)
	assert.Contains(t, schemaErr.Missing, models.ColTeamNumber)
}
