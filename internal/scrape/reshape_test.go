// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

func sampleGrouped() []GroupedRow {
	return []GroupedRow{
		{Group: "Sex", Label: "Male", Values: []types.Value{
			types.NumberValue(96.7), types.NumberValue(1477),
		}},
		{Group: "Sex", Label: "Female", Values: []types.Value{
			types.NumberValue(97.1), types.NumberValue(1382),
		}},
	}
}

func TestReshape(t *testing.T) {
	headers := []string{"anc1_urban", "denom_urban"}
	records, err := Reshape(sampleGrouped(), headers, "_", "mics_ghana_2017", "TM.1")
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("len = %d, want 4", len(records))
	}

	first := records[0]
	if first.Source != "mics_ghana_2017" || first.SurveyType != "mics" ||
		first.Country != "ghana" || first.Year != "2017" {
		t.Errorf("source decomposition = %+v", first)
	}
	if first.TableID != "TM.1" || first.RowGroup != "Sex" || first.RowLabel != "Male" {
		t.Errorf("identity fields = %+v", first)
	}
	if first.Indicator != "anc1" || first.DenomGroup != "urban" {
		t.Errorf("header split = (%q, %q), want (anc1, urban)", first.Indicator, first.DenomGroup)
	}
	if first.Value != types.NumberValue(96.7) {
		t.Errorf("value = %+v, want 96.7", first.Value)
	}
	if !first.DenomValue.IsMissing() {
		t.Errorf("denominator should be unresolved after reshape")
	}
}

func TestReshapeColumnMismatch(t *testing.T) {
	headers := []string{"anc1_urban", "denom_urban", "anc1_rural"}
	_, err := Reshape(sampleGrouped(), headers, "_", "mics_ghana_2017", "TM.1")
	var cme *ColumnMismatchError
	if !errors.As(err, &cme) {
		t.Fatalf("err = %v, want *ColumnMismatchError", err)
	}
	if cme.Headers != 3 || cme.Columns != 2 {
		t.Errorf("mismatch = %+v, want 3 headers / 2 columns", cme)
	}
}

func TestReshapeRoundTrip(t *testing.T) {
	// Long records grouped back by (row_group, row_label) reconstruct the
	// wide table's value set.
	rows := sampleGrouped()
	headers := []string{"anc1_urban", "denom_urban"}
	records, err := Reshape(rows, headers, "_", "mics_ghana_2017", "TM.1")
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}

	type subject struct{ group, label string }
	wide := make(map[subject][]string)
	for _, r := range records {
		k := subject{r.RowGroup, r.RowLabel}
		wide[k] = append(wide[k], r.Value.String())
	}

	for _, row := range rows {
		k := subject{row.Group, row.Label}
		var want []string
		for _, v := range row.Values {
			want = append(want, v.String())
		}
		got := wide[k]
		sort.Strings(got)
		sort.Strings(want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("subject %v values = %v, want %v", k, got, want)
		}
	}
}

func TestResolveDenominators(t *testing.T) {
	records := []types.TidyRecord{
		{Source: "s", TableID: "t", RowGroup: "Sex", RowLabel: "Male",
			Indicator: "anc1", DenomGroup: "urban", Value: types.NumberValue(96.7),
			DenomValue: types.Missing()},
		{Source: "s", TableID: "t", RowGroup: "Sex", RowLabel: "Male",
			Indicator: "denom", DenomGroup: "urban", Value: types.NumberValue(1477),
			DenomValue: types.Missing()},
		{Source: "s", TableID: "t", RowGroup: "Sex", RowLabel: "Female",
			Indicator: "anc1", DenomGroup: "rural", Value: types.NumberValue(88.2),
			DenomValue: types.Missing()},
	}

	out := ResolveDenominators(records, "denom")

	// Denominator series rows are folded in, not emitted.
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	if out[0].DenomValue != types.NumberValue(1477) {
		t.Errorf("male denom = %+v, want 1477", out[0].DenomValue)
	}
	// Left outer join: the unmatched substantive row survives with a
	// missing denominator.
	if out[1].RowLabel != "Female" {
		t.Fatalf("second record = %+v, want Female row", out[1])
	}
	if !out[1].DenomValue.IsMissing() {
		t.Errorf("female denom = %+v, want missing", out[1].DenomValue)
	}
}

func TestResolveDenominatorsMultiplicity(t *testing.T) {
	// Every substantive record appears exactly once regardless of whether
	// a denominator matches.
	records := []types.TidyRecord{
		{Source: "a", TableID: "t", RowGroup: "g", RowLabel: "r1",
			Indicator: "x", DenomGroup: "p", Value: types.NumberValue(1)},
		{Source: "a", TableID: "t", RowGroup: "g", RowLabel: "r2",
			Indicator: "x", DenomGroup: "p", Value: types.NumberValue(2)},
		{Source: "a", TableID: "t", RowGroup: "g", RowLabel: "r1",
			Indicator: "denom", DenomGroup: "p", Value: types.NumberValue(100)},
	}
	out := ResolveDenominators(records, "denom")
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	seen := make(map[string]int)
	for _, r := range out {
		seen[r.RowLabel]++
	}
	if seen["r1"] != 1 || seen["r2"] != 1 {
		t.Errorf("multiplicity = %v, want each substantive row once", seen)
	}
}
