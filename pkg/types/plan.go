// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"os"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// DefaultHeaderSep joins child and parent header labels into a flat column
// name, and is the separator the reshaper splits them back apart on.
const DefaultHeaderSep = "_"

// HeaderMode identifies how child labels pair with parent labels when
// composing flat column names.
type HeaderMode string

const (
	// ModeSharedChild repeats one child list under every parent
	// (cartesian, child-major within parent order).
	ModeSharedChild HeaderMode = "shared"

	// ModeParallelChild pairs one child list per parent positionally.
	ModeParallelChild HeaderMode = "parallel"
)

// HeaderSpec describes the two-level column structure of a scraped table.
// Exactly one of Children (shared-child mode) or ChildSets (parallel-list
// mode) must be set; the choice is explicit rather than inferred from the
// shape of the caller's data.
type HeaderSpec struct {
	// Parents are the top-level header labels, in column order.
	Parents []string `json:"parents" yaml:"parents"`

	// Children is the child label list shared across all parents.
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`

	// ChildSets holds one child label list per parent, paired positionally.
	ChildSets [][]string `json:"child_sets,omitempty" yaml:"child_sets,omitempty"`

	// Sep joins child and parent labels (default "_").
	Sep string `json:"sep,omitempty" yaml:"sep,omitempty"`
}

// Mode returns the composition mode implied by which child field is set.
// Call Validate first; Mode on an invalid spec returns shared-child.
func (h HeaderSpec) Mode() HeaderMode {
	if len(h.ChildSets) > 0 {
		return ModeParallelChild
	}
	return ModeSharedChild
}

// Separator returns the configured join separator, or the default.
func (h HeaderSpec) Separator() string {
	if h.Sep != "" {
		return h.Sep
	}
	return DefaultHeaderSep
}

// ComposedCount returns the number of flat column names the header composes:
// |children| x |parents| in shared-child mode, the sum of per-parent child
// list lengths in parallel-list mode.
func (h HeaderSpec) ComposedCount() int {
	if h.Mode() == ModeParallelChild {
		n := 0
		for _, set := range h.ChildSets {
			n += len(set)
		}
		return n
	}
	return len(h.Children) * len(h.Parents)
}

// Validate checks the header description for structural errors.
func (h HeaderSpec) Validate() error {
	if len(h.Parents) == 0 {
		return fmt.Errorf("header spec: no parent labels")
	}
	if len(h.Children) == 0 && len(h.ChildSets) == 0 {
		return fmt.Errorf("header spec: neither children nor child_sets set")
	}
	if len(h.Children) > 0 && len(h.ChildSets) > 0 {
		return fmt.Errorf("header spec: children and child_sets are mutually exclusive")
	}
	if len(h.ChildSets) > 0 && len(h.ChildSets) != len(h.Parents) {
		return fmt.Errorf("header spec: %d child sets for %d parents", len(h.ChildSets), len(h.Parents))
	}
	return nil
}

// TableConfig describes one (document, page, table) scrape.
type TableConfig struct {
	// Source identifies the report document, as survey-type_country_year.
	Source string `json:"source" yaml:"source"`

	// PDF is the local filesystem path to the report PDF.
	PDF string `json:"pdf" yaml:"pdf"`

	// URL is an optional download location for the PDF, used by fetch.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Page is the 1-based page number the table appears on.
	Page int `json:"page" yaml:"page"`

	// TableID identifies the table within the report (e.g. "TM.1").
	TableID string `json:"table_id" yaml:"table_id"`

	// StartKey and EndKey are the marker patterns bounding the data region.
	// They are matched as regular expressions against each row's label
	// cell, with substring semantics, so plain labels work unanchored and
	// multilingual reports can use alternations.
	StartKey string `json:"start_key" yaml:"start_key"`
	EndKey   string `json:"end_key" yaml:"end_key"`

	// ValuePattern optionally overrides the default value-token pattern,
	// e.g. to tolerate locale-specific decimal formatting.
	ValuePattern string `json:"value_pattern,omitempty" yaml:"value_pattern,omitempty"`

	// Columns is the number of value columns in the table body.
	Columns int `json:"columns" yaml:"columns"`

	// Header describes the table's two-level column structure.
	Header HeaderSpec `json:"header" yaml:"header"`
}

// Validate checks a single table entry for configuration errors, including
// the composed-header-count vs. value-column-count invariant, so header
// spec bugs surface before any PDF is opened.
func (t TableConfig) Validate() error {
	if t.Source == "" {
		return fmt.Errorf("source is required")
	}
	if t.PDF == "" {
		return fmt.Errorf("pdf path is required")
	}
	if t.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", t.Page)
	}
	if t.TableID == "" {
		return fmt.Errorf("table_id is required")
	}
	if t.StartKey == "" || t.EndKey == "" {
		return fmt.Errorf("start_key and end_key are required")
	}
	if _, err := regexp.Compile(t.StartKey); err != nil {
		return fmt.Errorf("invalid start_key: %w", err)
	}
	if _, err := regexp.Compile(t.EndKey); err != nil {
		return fmt.Errorf("invalid end_key: %w", err)
	}
	if t.ValuePattern != "" {
		if _, err := regexp.Compile(t.ValuePattern); err != nil {
			return fmt.Errorf("invalid value_pattern: %w", err)
		}
	}
	if t.Columns < 1 {
		return fmt.Errorf("columns must be >= 1, got %d", t.Columns)
	}
	if err := t.Header.Validate(); err != nil {
		return err
	}
	if n := t.Header.ComposedCount(); n != t.Columns {
		return fmt.Errorf("header spec composes %d columns but table declares %d", n, t.Columns)
	}
	return nil
}

// Plan is a scrape plan document: the full list of tables to scrape plus
// plan-wide settings.
type Plan struct {
	// DenomIndicator is the indicator name marking denominator series
	// (default "denom").
	DenomIndicator string `json:"denom_indicator,omitempty" yaml:"denom_indicator,omitempty"`

	// Tables lists every (document, page, table) triple to scrape.
	Tables []TableConfig `json:"tables" yaml:"tables"`
}

// DenomName returns the configured denominator indicator name, or "denom".
func (p *Plan) DenomName() string {
	if p.DenomIndicator != "" {
		return p.DenomIndicator
	}
	return "denom"
}

// Validate checks every table entry, reporting the first error with enough
// context to locate the offending entry.
func (p *Plan) Validate() error {
	if len(p.Tables) == 0 {
		return fmt.Errorf("plan has no tables")
	}
	for i, t := range p.Tables {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("table %d (%s %s): %w", i, t.Source, t.TableID, err)
		}
	}
	return nil
}

// LoadPlan reads and parses a scrape plan YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	return &p, nil
}
