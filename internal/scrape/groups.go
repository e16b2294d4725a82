// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"regexp"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

// GroupedRow is one data row tagged with the section label that scopes it.
type GroupedRow struct {
	Group  string
	Label  string
	Values []types.Value
}

// AssembleGroups reconstructs the implicit row hierarchy of a sliced cell
// matrix. A row is header-only when all of its value cells are missing, or
// when its label matches a marker key - boundary rows such as a "Total"
// summary may carry values and still open their own group. Each header-only
// row sets the group for itself and every following data row until the next
// one (forward fill). Pure header rows are dropped after the fill; a
// marker-key row that carries values is kept as a data row under its own
// label. Cell strings become tagged values here, once: every emitted row
// has a non-empty group and at least one non-missing value.
//
// Rows are order-dependent; callers must pass the slice in page order.
func AssembleGroups(matrix [][]string, startKey, endKey *regexp.Regexp) []GroupedRow {
	var out []GroupedRow
	group := ""

	for _, row := range matrix {
		label := row[0]
		values := parseCells(row[1:])

		isMarker := startKey.MatchString(label) || endKey.MatchString(label)
		headerOnly := allMissing(values)

		switch {
		case headerOnly:
			// Pure section header: contributes only its label as context.
			group = label
		case isMarker:
			// Boundary row with values: its own label is its own group.
			group = label
			out = append(out, GroupedRow{Group: label, Label: label, Values: values})
		default:
			if group == "" {
				// Data row before any header row; cannot satisfy the
				// group invariant, so drop it.
				continue
			}
			out = append(out, GroupedRow{Group: group, Label: label, Values: values})
		}
	}

	return out
}

func parseCells(cells []string) []types.Value {
	values := make([]types.Value, len(cells))
	for i, c := range cells {
		values[i] = types.ParseValue(c)
	}
	return values
}

func allMissing(values []types.Value) bool {
	for _, v := range values {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}
