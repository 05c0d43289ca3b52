// Package csv parses the seed CSV files into header-keyed rows.
//
// The dialect is deliberately small: a header line, comma separators and
// double quotes that toggle whether commas split fields. Doubled quotes inside
// a quoted field are not an escape sequence; each quote character flips the
// quoted state, so `""` inside a field produces unexpected splits.
package csv

import (
	"fmt"
	"io"
	"strings"
)

const bom = "\uFEFF"

// Row is one data line of a CSV file keyed by header name.
type Row struct {
	Line   int               // 1-based line number in the source text
	Values map[string]string // header -> value
}

// Get returns the value for a header, or "" when the header is absent.
func (r Row) Get(header string) string {
	return r.Values[header]
}

// Has reports whether the header is present with a non-empty value.
func (r Row) Has(header string) bool {
	return r.Values[header] != ""
}

// Table is the parsed form of a CSV file.
type Table struct {
	Header []string
	Rows   []Row
}

// Parse converts raw CSV text into rows keyed by the header line.
// It returns nil when the text has no non-blank lines.
func Parse(content string) []Row {
	return Decode(content).Rows
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader) ([]Row, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return Parse(string(b)), nil
}

// Decode parses content and keeps the header order alongside the rows.
func Decode(content string) Table {
	content = strings.TrimPrefix(content, bom)
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var header []string
	var rows []Row

	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if header == nil {
			header = splitHeader(line)
			continue
		}

		fields := splitLine(line)
		values := make(map[string]string, len(header))
		for j, h := range header {
			var v string
			if j < len(fields) {
				v = unwrapQuotes(fields[j])
			}
			values[h] = v
		}
		rows = append(rows, Row{Line: i + 1, Values: values})
	}

	return Table{Header: header, Rows: rows}
}

func splitHeader(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitLine splits on commas that are outside a quoted section.
// Quote characters toggle the state and are not copied into the field.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// unwrapQuotes removes one pair of wrapping double quotes.
func unwrapQuotes(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}
