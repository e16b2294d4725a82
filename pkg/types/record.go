// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// sourceSep separates the survey type, country, and year parts of a source
// identifier, e.g. "mics_sierra-leone_2017".
const sourceSep = "_"

// TidyRecord is one (subject, indicator, value, denominator) observation in
// long form, the terminal output of a scrape. Column names and order match
// the CSV and database schema exactly.
type TidyRecord struct {
	// Source identifies the report document, as survey-type_country_year.
	Source string `json:"source" yaml:"source"`

	// SurveyType, Country, and Year are the decomposed parts of Source.
	SurveyType string `json:"survey_type" yaml:"survey_type"`
	Country    string `json:"country" yaml:"country"`
	Year       string `json:"year" yaml:"year"`

	// TableID identifies the table within the report (e.g. "TM.1").
	TableID string `json:"table_id" yaml:"table_id"`

	// RowGroup is the section label scoping the row (e.g. "Residence").
	RowGroup string `json:"row_group" yaml:"row_group"`

	// RowLabel is the row's own label within its group (e.g. "Urban").
	RowLabel string `json:"row_label" yaml:"row_label"`

	// Indicator is the child part of the composed column header.
	Indicator string `json:"indicator" yaml:"indicator"`

	// DenomGroup is the parent part of the composed column header, shared
	// between an indicator and its denominator series.
	DenomGroup string `json:"denominator_group" yaml:"denominator_group"`

	// Value is the observation itself.
	Value Value `json:"value" yaml:"value"`

	// DenomValue is the matching denominator observation, missing when no
	// denominator row shares this record's key.
	DenomValue Value `json:"denominator_value" yaml:"denominator_value"`
}

// RecordColumns is the output column order for CSV export and the database
// schema. Downstream consumers depend on these names.
var RecordColumns = []string{
	"source", "survey_type", "country", "year", "table_id",
	"row_group", "row_label", "indicator", "denominator_group",
	"value", "denominator_value",
}

// SplitSource decomposes a source identifier into its survey type, country,
// and year parts. Identifiers with fewer than three parts leave the missing
// trailing parts empty; country names containing the separator are not
// supported (use a hyphenated country slug instead).
func SplitSource(source string) (surveyType, country, year string) {
	parts := strings.SplitN(source, sourceSep, 3)
	surveyType = parts[0]
	if len(parts) > 1 {
		country = parts[1]
	}
	if len(parts) > 2 {
		year = parts[2]
	}
	return surveyType, country, year
}
