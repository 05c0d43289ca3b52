package core

// validation.go checks parsed CSV rows against a table's field specs.
//
// Validation happens at two levels:
//  1. Header validation: reports required columns missing from the file
//  2. Row validation: rejects rows whose required fields are empty
//
// A row that fails validation is skipped by the seeder; it never aborts a run.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brewsandbytes/seeder/internal/csv"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// MissingColumns returns the required columns absent from header.
func MissingColumns(specs []FieldSpec, header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, spec := range specs {
		if spec.Required && !present[spec.Name] {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}

// ValidateRow returns the first required field of row that is empty.
func ValidateRow(specs []FieldSpec, row csv.Row) error {
	for _, spec := range specs {
		if spec.Required && row.Get(spec.Name) == "" {
			return ValidationError{Field: spec.Name, Message: "required field is empty"}
		}
	}
	return nil
}

// parseLeadingInt reads the integer at the start of s, ignoring anything
// after the digits: "12", " 12", "12abc" and "+12.5" all give 12.
func parseLeadingInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ValidationError{Field: colID, Value: s, Message: "not an integer"}
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, ValidationError{Field: colID, Value: s, Message: "integer out of range"}
	}
	return n, nil
}

// parseFlag reports whether s equals "true", ignoring case.
func parseFlag(s string) bool {
	return strings.EqualFold(s, "true")
}
