// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

// Extractor produces the ordered raw text lines of one PDF page. It is the
// batch runner's only external collaborator; backends live in
// internal/pdftext and tests supply fakes.
type Extractor interface {
	ExtractPage(path string, page int) ([]string, error)
}

// FailureKind classifies why a table scrape failed.
type FailureKind string

const (
	FailExtraction     FailureKind = "extraction"
	FailBoundary       FailureKind = "boundary"
	FailColumnMismatch FailureKind = "column_mismatch"
	FailConfig         FailureKind = "config"
)

// Failure records one table that could not be scraped, with enough identity
// for the caller to retry or fix the specific case by hand.
type Failure struct {
	Source  string
	TableID string
	Kind    FailureKind
	Err     error
}

// TableRef identifies one successfully scraped table.
type TableRef struct {
	Source  string
	TableID string
	Records int
}

// BatchResult holds the outcome of a batch scrape run: the unioned tidy
// records from every table that succeeded, plus the per-table failures.
type BatchResult struct {
	Records  []types.TidyRecord
	Scraped  []TableRef
	Failures []Failure
}

// Total returns the number of tables processed.
func (r BatchResult) Total() int {
	return len(r.Scraped) + len(r.Failures)
}

// HasFailures reports whether any tables failed.
func (r BatchResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// ScrapeTable runs the full reconstruction pipeline for one table: extract
// page lines, split into a cell matrix, slice to the marker bounds,
// assemble row groups, compose headers, and reshape to long records. The
// returned records still carry missing denominator values; resolution
// happens over the unioned batch.
func ScrapeTable(ex Extractor, cfg types.TableConfig) ([]types.TidyRecord, error) {
	startKey, err := regexp.Compile(cfg.StartKey)
	if err != nil {
		return nil, fmt.Errorf("compiling start_key: %w", err)
	}
	endKey, err := regexp.Compile(cfg.EndKey)
	if err != nil {
		return nil, fmt.Errorf("compiling end_key: %w", err)
	}

	pattern := DefaultValuePattern
	if cfg.ValuePattern != "" {
		pattern, err = regexp.Compile(cfg.ValuePattern)
		if err != nil {
			return nil, fmt.Errorf("compiling value_pattern: %w", err)
		}
	}

	headers, err := ComposeHeaders(cfg.Header)
	if err != nil {
		return nil, err
	}
	if len(headers) != cfg.Columns {
		return nil, &ColumnMismatchError{Headers: len(headers), Columns: cfg.Columns}
	}

	lines, err := ex.ExtractPage(cfg.PDF, cfg.Page)
	if err != nil {
		return nil, &ExtractionError{Path: cfg.PDF, Page: cfg.Page, Err: err}
	}

	matrix := SplitRows(lines, pattern, cfg.Columns)

	sliced, err := Slice(matrix, startKey, endKey)
	if err != nil {
		return nil, err
	}

	rows := AssembleGroups(sliced, startKey, endKey)

	return Reshape(rows, headers, cfg.Header.Separator(), cfg.Source, cfg.TableID)
}

// ScrapeAll walks the plan table by table, printing per-table status to w.
// Table failures are isolated: a failing table is recorded and the batch
// continues. After the union, denominator series are resolved against the
// substantive records. Failures are deterministic for a given report
// layout, so nothing is retried.
func ScrapeAll(ex Extractor, plan *types.Plan, w io.Writer) BatchResult {
	var result BatchResult

	for _, cfg := range plan.Tables {
		records, err := ScrapeTable(ex, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed  %s %s: %v\n", cfg.Source, cfg.TableID, err)
			result.Failures = append(result.Failures, Failure{
				Source:  cfg.Source,
				TableID: cfg.TableID,
				Kind:    classify(err),
				Err:     err,
			})
			continue
		}

		fmt.Fprintf(w, "scraped %s %s (%d records)\n", cfg.Source, cfg.TableID, len(records))
		result.Records = append(result.Records, records...)
		result.Scraped = append(result.Scraped, TableRef{
			Source:  cfg.Source,
			TableID: cfg.TableID,
			Records: len(records),
		})
	}

	result.Records = ResolveDenominators(result.Records, plan.DenomName())

	fmt.Fprintf(w, "\nscraped: %d, failed: %d, records: %d\n",
		len(result.Scraped), len(result.Failures), len(result.Records))

	return result
}

func classify(err error) FailureKind {
	var be *BoundaryError
	var cme *ColumnMismatchError
	var ee *ExtractionError
	switch {
	case errors.As(err, &be):
		return FailBoundary
	case errors.As(err, &cme):
		return FailColumnMismatch
	case errors.As(err, &ee):
		return FailExtraction
	default:
		return FailConfig
	}
}
