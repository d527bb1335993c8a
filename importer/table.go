package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/nonsonwune/mcm_db/models"
)

const csvExtension = ".csv"

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table is a delimited input file held in memory.
type Table struct {
	Headers []string
	Records [][]string
	Lines   []int // source line of each record
}

// CheckExtension rejects names that do not end in .csv.
func CheckExtension(name string) error {
	if !strings.HasSuffix(name, csvExtension) {
		return fmt.Errorf("%s: %w", name, ErrInvalidExtension)
	}
	return nil
}

// OpenTable reads the .csv file at path.
func OpenTable(path string) (*Table, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("%s: %w: %v", path, ErrUnreadable, err)
	}
	defer file.Close()

	table, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrUnreadable, err)
	}
	return table, nil
}

// ReadTable parses a delimited table with a header row. A UTF-8 byte order
// mark is dropped and input that is not valid UTF-8 is decoded as Windows-1252.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	data = bytes.TrimPrefix(data, byteOrderMark)

	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("error decoding input: %w", err)
		}
		log.Printf("Input is not valid UTF-8, decoded as Windows-1252")
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("input has no header row")
		}
		return nil, fmt.Errorf("error reading headers: %w", err)
	}

	table := &Table{Headers: headers}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		line, _ := reader.FieldPos(0)
		table.Records = append(table.Records, record)
		table.Lines = append(table.Lines, line)
	}
	return table, nil
}

// Rows converts records to RawRows using a resolved column index.
func (t *Table) Rows(index ColumnIndex) []models.RawRow {
	rows := make([]models.RawRow, 0, len(t.Records))
	for i, record := range t.Records {
		rows = append(rows, models.RawRow{
			Line:          t.Lines[i],
			Institution:   index.Value(record, models.ColInstitution),
			City:          index.Value(record, models.ColCity),
			StateProvince: models.NullString(index.Value(record, models.ColStateProvince)),
			Country:       models.NullString(index.Value(record, models.ColCountry)),
			TeamNumber:    index.Value(record, models.ColTeamNumber),
			Advisor:       index.Value(record, models.ColAdvisor),
			Problem:       models.NullString(index.Value(record, models.ColProblem)),
			Ranking:       index.Value(record, models.ColRanking),
		})
	}
	return rows
}
