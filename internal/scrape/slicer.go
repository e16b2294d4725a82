// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import "regexp"

// Slice trims a cell matrix to the contiguous row range bounded by the two
// marker keys, inclusive, after dropping fully-empty rows. Keys match
// against each row's label cell with substring semantics. The first row
// matching startKey defines the top boundary; the first row at or below it
// matching endKey defines the bottom boundary, even when that yields a
// shorter range than a later match would. A key that matches no row is a
// fatal condition for the table, reported as a BoundaryError.
//
// Slicing is idempotent: the first and last rows of the result still match
// the keys, so slicing again with the same keys returns the same rows.
func Slice(matrix [][]string, startKey, endKey *regexp.Regexp) ([][]string, error) {
	rows := dropEmptyRows(matrix)

	start := -1
	for i, row := range rows {
		if startKey.MatchString(row[0]) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, &BoundaryError{Key: startKey.String()}
	}

	end := -1
	for i := start; i < len(rows); i++ {
		if endKey.MatchString(rows[i][0]) {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, &BoundaryError{Key: endKey.String()}
	}

	return rows[start : end+1], nil
}

func dropEmptyRows(matrix [][]string) [][]string {
	rows := make([][]string, 0, len(matrix))
	for _, row := range matrix {
		if !emptyRow(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
