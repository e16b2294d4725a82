// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the three states a table cell can be in once the
// raw text has been interpreted.
type ValueKind int

const (
	// ValueMissing marks an absent cell: the source table printed nothing,
	// or printed an explicit missing marker ("-").
	ValueMissing ValueKind = iota

	// ValueText marks a cell that carries non-numeric content, including
	// the "*" suppression marker for small sample sizes.
	ValueText

	// ValueNumber marks a cell parsed as a number (percentage or count).
	ValueNumber
)

// Value is a tagged table cell. Cells are interpreted exactly once, when
// rows are assembled into groups; every later stage carries the tag instead
// of re-inferring types from strings.
type Value struct {
	Kind   ValueKind `json:"kind" yaml:"kind"`
	Text   string    `json:"text,omitempty" yaml:"text,omitempty"`
	Number float64   `json:"number,omitempty" yaml:"number,omitempty"`
}

// Missing returns the missing cell value.
func Missing() Value {
	return Value{Kind: ValueMissing}
}

// TextValue returns a text-tagged cell value.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// NumberValue returns a number-tagged cell value.
func NumberValue(f float64) Value {
	return Value{Kind: ValueNumber, Number: f}
}

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// String renders the cell for CSV and database output: empty for missing,
// minimal digits for numbers, verbatim for text.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueText:
		return v.Text
	default:
		return ""
	}
}

// ParseValue interprets one raw cell string. Empty cells and the explicit
// "-" marker become missing; parenthesized numbers (survey reports bracket
// estimates based on few cases) parse as their inner number; anything else
// numeric becomes a number; the rest, including the "*" suppression marker,
// stays text so that suppressed observations survive as data rows.
func ParseValue(cell string) Value {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return Missing()
	}

	num := s
	if strings.HasPrefix(num, "(") && strings.HasSuffix(num, ")") {
		num = num[1 : len(num)-1]
	}
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		return NumberValue(f)
	}

	return TextValue(s)
}
