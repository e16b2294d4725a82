// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import "fmt"

// BoundaryError reports that a marker key matched no row label, so the data
// region of the table could not be located. Deterministic for a given report
// layout: retrying without changing the key reproduces it.
type BoundaryError struct {
	// Key is the marker pattern that failed to match.
	Key string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("no row label matches marker key %q", e.Key)
}

// ColumnMismatchError reports that the composed header count differs from
// the configured value-column count. This is a header spec bug, never
// transient input noise, so it is surfaced immediately and not retried.
type ColumnMismatchError struct {
	Headers int
	Columns int
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("composed %d headers for %d value columns", e.Headers, e.Columns)
}

// ExtractionError reports that the page-text extractor could not produce
// lines for a page.
type ExtractionError struct {
	Path string
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s page %d: %v", e.Path, e.Page, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
