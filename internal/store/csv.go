// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

// WriteCSV renders tidy records as CSV with the fixed output column set.
// Missing values render as empty cells.
func WriteCSV(w io.Writer, records []types.TidyRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(types.RecordColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Source, r.SurveyType, r.Country, r.Year, r.TableID,
			r.RowGroup, r.RowLabel, r.Indicator, r.DenomGroup,
			r.Value.String(), r.DenomValue.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes stored records, optionally filtered, as CSV.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer, f Filter) error {
	records, err := s.Records(ctx, f)
	if err != nil {
		return err
	}
	return WriteCSV(w, records)
}
