// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape reconstructs structured tables from flat page text.
// A scraped table passes through four stages: split raw lines into a cell
// matrix, slice the matrix to the marker-key bounds, assemble row groups,
// then compose headers and reshape to long tidy records. Each stage takes
// its input and returns a new derived value; nothing is mutated in place.
package scrape

import (
	"regexp"
	"strings"
)

// DefaultValuePattern matches one value-looking token: a bounded decimal
// percentage (0-100, optionally parenthesized), a bare integer count, the
// "*" suppression marker, or the "-" missing marker. The first token on a
// line that matches fixes the boundary between the row label and the data
// values. Per-table configuration can override this for reports with
// locale-specific number formatting.
var DefaultValuePattern = regexp.MustCompile(`^\(?(100(\.0+)?|\d{1,2}(\.\d+)?)\)?$|^\d+$|^\*$|^-$`)

// thousandsSep matches a comma used as a digit grouping separator: a digit,
// a comma, then exactly three digits not followed by another digit.
var thousandsSep = regexp.MustCompile(`(\d),(\d{3})($|\D)`)

// decimalComma matches a comma used as a decimal separator, once grouping
// commas have been removed.
var decimalComma = regexp.MustCompile(`(\d),(\d)`)

// NormalizeLine collapses whitespace runs to single spaces and harmonizes
// numeric separators so downstream parsing is deterministic: grouping
// commas in large integers are removed ("1,477" -> "1477"), and remaining
// digit-comma-digit sequences are treated as decimal commas ("96,7" ->
// "96.7"). Dots are left untouched.
func NormalizeLine(line string) string {
	s := strings.Join(strings.Fields(line), " ")
	for thousandsSep.MatchString(s) {
		s = thousandsSep.ReplaceAllString(s, "$1$2$3")
	}
	return decimalComma.ReplaceAllString(s, "$1.$2")
}

// SplitRows turns raw page lines into a cell matrix: one row per line, each
// row holding a label cell followed by exactly cols value cells. The label
// ends at the first token matching the value pattern; lines with no value
// token become label-only rows with empty value cells. Rows with fewer
// value tokens than cols are padded with empty cells rather than dropped,
// and surplus tokens fold into the last column, so column misalignment
// never aborts a scrape - the caller validates row shape afterward.
func SplitRows(lines []string, pattern *regexp.Regexp, cols int) [][]string {
	if pattern == nil {
		pattern = DefaultValuePattern
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		tokens := strings.Fields(NormalizeLine(line))
		rows = append(rows, splitLine(tokens, pattern, cols))
	}
	return rows
}

func splitLine(tokens []string, pattern *regexp.Regexp, cols int) []string {
	row := make([]string, cols+1)

	split := -1
	for i, tok := range tokens {
		if pattern.MatchString(tok) {
			split = i
			break
		}
	}

	if split < 0 {
		// Pure label line: section header or prose.
		row[0] = strings.Join(tokens, " ")
		return row
	}

	row[0] = strings.Join(tokens[:split], " ")
	values := tokens[split:]
	if len(values) > cols {
		// Fold surplus tokens into the last column.
		values = append(values[:cols-1:cols-1], strings.Join(values[cols-1:], " "))
	}
	copy(row[1:], values)
	return row
}
