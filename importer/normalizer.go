package importer

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nonsonwune/mcm_db/models"
)

// Institution name delimiter sets. Text from the first delimiter on is a
// qualifier (campus, department, city) and is not part of the name.
const (
	DefaultDelimiters = ","
	StrictDelimiters  = ",-()"
)

// Record is a normalized row: the dedup key plus the institution and team it
// describes. Institution.ID and Team.InstitutionID are left for the builder.
type Record struct {
	Key         string
	Institution models.Institution
	Team        models.Team
}

// Normalizer cleans row text and derives institution dedup keys.
// It is not safe for concurrent use.
type Normalizer struct {
	Delimiters string
	title      cases.Caser
}

func NewNormalizer(delimiters string) *Normalizer {
	if delimiters == "" {
		delimiters = DefaultDelimiters
	}
	return &Normalizer{
		Delimiters: delimiters,
		title:      cases.Title(language.Und),
	}
}

// Key returns the dedup key for a raw institution string: the text before the
// first delimiter, trimmed and lower-cased.
func (n *Normalizer) Key(institution string) string {
	if i := strings.IndexAny(institution, n.Delimiters); i >= 0 {
		institution = institution[:i]
	}
	return strings.ToLower(strings.TrimSpace(institution))
}

// Title lower-cases s and capitalizes each word.
func (n *Normalizer) Title(s string) string {
	return n.title.String(strings.ToLower(strings.TrimSpace(s)))
}

// OptionalTitle title-cases a present value; missing or blank stays absent.
func (n *Normalizer) OptionalTitle(s sql.NullString) sql.NullString {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: n.Title(s.String), Valid: true}
}

// Capitalize upper-cases the first character and leaves the rest unchanged.
func Capitalize(s sql.NullString) sql.NullString {
	value := strings.TrimSpace(s.String)
	if !s.Valid || value == "" {
		return sql.NullString{}
	}
	r, size := utf8.DecodeRuneInString(value)
	return sql.NullString{String: string(unicode.ToUpper(r)) + value[size:], Valid: true}
}

// TeamNumber parses a team number cell. Spreadsheet exports sometimes render
// integers as "1001.0", so a fraction of only zeros is accepted. Exponents and
// values outside the int range are rejected.
func TeamNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	digits, fraction, hasFraction := strings.Cut(raw, ".")
	if hasFraction && (fraction == "" || strings.Trim(fraction, "0") != "") {
		return 0, fmt.Errorf("invalid team number %q", raw)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid team number %q", raw)
	}
	return n, nil
}

// Normalize cleans one row. Rows without an institution name or with an
// unparseable team number yield an *ImportError.
func (n *Normalizer) Normalize(row models.RawRow) (Record, error) {
	key := n.Key(row.Institution)
	if key == "" {
		return Record{}, &ImportError{
			Code:    CodeMissingInstitution,
			Message: "institution name is empty",
			Line:    row.Line,
			Context: map[string]string{"institution": row.Institution},
		}
	}

	teamNumber, err := TeamNumber(row.TeamNumber)
	if err != nil {
		return Record{}, &ImportError{
			Code:    CodeInvalidTeamNumber,
			Message: err.Error(),
			Line:    row.Line,
			Context: map[string]string{"team_number": row.TeamNumber},
		}
	}

	return Record{
		Key: key,
		Institution: models.Institution{
			Name:          n.Title(key),
			City:          n.Title(row.City),
			StateProvince: n.OptionalTitle(row.StateProvince),
			Country:       n.OptionalTitle(row.Country),
		},
		Team: models.Team{
			ID:      teamNumber,
			Advisor: n.Title(row.Advisor),
			Problem: Capitalize(row.Problem),
			Ranking: n.Title(row.Ranking),
		},
	}, nil
}
