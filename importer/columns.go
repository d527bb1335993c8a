package importer

import (
	"log"
	"strings"

	"github.com/nonsonwune/mcm_db/models"
)

// RequiredColumns lists the columns an input table must provide. Institution
// is matched by substring; the rest need an exact, case-sensitive header.
var RequiredColumns = []string{
	models.ColInstitution,
	models.ColCity,
	models.ColStateProvince,
	models.ColCountry,
	models.ColTeamNumber,
	models.ColAdvisor,
	models.ColRanking,
}

// ColumnIndex maps column names to their position in a record.
type ColumnIndex map[string]int

// Value returns the trimmed cell for column name, or "" if the column or cell is missing.
func (c ColumnIndex) Value(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// MissingColumns reports the required columns absent from headers, in
// RequiredColumns order. It does not modify headers.
func MissingColumns(headers []string) []string {
	missing := make([]string, 0)
	for _, required := range RequiredColumns {
		if required == models.ColInstitution {
			if institutionColumn(headers) == -1 {
				missing = append(missing, required)
			}
			continue
		}
		if exactColumn(headers, required) == -1 {
			missing = append(missing, required)
		}
	}
	return missing
}

// ResolveColumns validates headers and returns the index of every column.
// A header that only contains "Institution" is rewritten in place to the
// canonical name so later stages can address it as such.
func ResolveColumns(headers []string) (ColumnIndex, error) {
	if missing := MissingColumns(headers); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	if idx := institutionColumn(headers); headers[idx] != models.ColInstitution {
		log.Printf("Renaming column %q to %q", headers[idx], models.ColInstitution)
		headers[idx] = models.ColInstitution
	}

	index := make(ColumnIndex, len(headers))
	for i, header := range headers {
		if _, exists := index[header]; !exists {
			index[header] = i
		}
	}
	return index, nil
}

// institutionColumn prefers an exact "Institution" header, then the first
// header containing it.
func institutionColumn(headers []string) int {
	if idx := exactColumn(headers, models.ColInstitution); idx != -1 {
		return idx
	}
	for i, header := range headers {
		if strings.Contains(header, models.ColInstitution) {
			return i
		}
	}
	return -1
}

func exactColumn(headers []string, name string) int {
	for i, header := range headers {
		if header == name {
			return i
		}
	}
	return -1
}
