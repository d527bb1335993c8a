package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidExtension is returned for input names without the .csv suffix.
	ErrInvalidExtension = errors.New("you must specify a valid .csv file")
	// ErrFileNotFound is returned when the input file does not exist.
	ErrFileNotFound = errors.New("file couldn't be found")
	// ErrUnreadable is returned when the input exists but cannot be read as a table.
	ErrUnreadable = errors.New("file couldn't be read")
)

// Row error codes
const (
	CodeMissingInstitution = "MISSING_INSTITUTION"
	CodeInvalidTeamNumber  = "INVALID_TEAM_NUMBER"
)

// SchemaError lists the required columns an input header is missing.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("file doesn't contain the following required columns: [%s]", strings.Join(e.Missing, ", "))
}

// ImportError describes an input row that could not be turned into entities.
type ImportError struct {
	Code    string
	Message string
	Line    int
	Context map[string]string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("line %d: [%s] %s", e.Line, e.Code, e.Message)
}
