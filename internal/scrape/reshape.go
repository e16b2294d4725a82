// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"strings"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

// Reshape converts one table's grouped rows from wide form to long form:
// one record per (row, composed header). Each composed header splits back
// into its (indicator, denominator group) parts on the first occurrence of
// sep; a header with no separator keeps an empty denominator group. The
// header count must equal the table's value-column count - a mismatch is a
// configuration error, never silently truncated or padded.
func Reshape(rows []GroupedRow, headers []string, sep, source, tableID string) ([]types.TidyRecord, error) {
	if len(rows) > 0 && len(headers) != len(rows[0].Values) {
		return nil, &ColumnMismatchError{Headers: len(headers), Columns: len(rows[0].Values)}
	}

	surveyType, country, year := types.SplitSource(source)

	records := make([]types.TidyRecord, 0, len(rows)*len(headers))
	for _, row := range rows {
		for i, name := range headers {
			indicator, denomGroup := splitHeader(name, sep)
			records = append(records, types.TidyRecord{
				Source:     source,
				SurveyType: surveyType,
				Country:    country,
				Year:       year,
				TableID:    tableID,
				RowGroup:   row.Group,
				RowLabel:   row.Label,
				Indicator:  indicator,
				DenomGroup: denomGroup,
				Value:      row.Values[i],
				DenomValue: types.Missing(),
			})
		}
	}
	return records, nil
}

func splitHeader(name, sep string) (indicator, denomGroup string) {
	parts := strings.SplitN(name, sep, 2)
	if len(parts) < 2 {
		return name, ""
	}
	return parts[0], parts[1]
}

// denomKey is the natural join key shared by a substantive observation and
// its denominator observation.
type denomKey struct {
	source     string
	tableID    string
	rowGroup   string
	rowLabel   string
	denomGroup string
}

// ResolveDenominators splits the unioned long table into denominator series
// (records whose indicator equals denomIndicator) and substantive records,
// then joins the denominators back onto the substantive side on (source,
// table, row group, row label, denominator group). The join is left outer
// on the substantive side: every substantive record appears exactly once in
// the result, with a missing denominator value when no denominator row
// shares its key.
func ResolveDenominators(records []types.TidyRecord, denomIndicator string) []types.TidyRecord {
	denoms := make(map[denomKey]types.Value)
	for _, r := range records {
		if r.Indicator == denomIndicator {
			denoms[keyOf(r)] = r.Value
		}
	}

	out := make([]types.TidyRecord, 0, len(records))
	for _, r := range records {
		if r.Indicator == denomIndicator {
			continue
		}
		if v, ok := denoms[keyOf(r)]; ok {
			r.DenomValue = v
		}
		out = append(out, r)
	}
	return out
}

func keyOf(r types.TidyRecord) denomKey {
	return denomKey{
		source:     r.Source,
		tableID:    r.TableID,
		rowGroup:   r.RowGroup,
		rowLabel:   r.RowLabel,
		denomGroup: r.DenomGroup,
	}
}
