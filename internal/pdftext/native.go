// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts the text of one PDF page as an ordered sequence
// of lines. Two backends implement the same contract: a pure-Go reader
// built on ledongthuc/pdf, and an exec wrapper around pdftotext for reports
// the pure-Go reader renders poorly. PDF parsing itself is delegated
// entirely to the backend; everything above this package works on lines.
package pdftext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

func init() {
	// Survey report PDFs routinely embed fonts with incomplete unicode
	// maps; keep the reader quiet about them.
	pdf.DebugOn = false
}

// defaultLineTolerance is the vertical distance, in PDF points, within
// which two text fragments belong to the same visual line.
const defaultLineTolerance = 2.0

// fragmentGap is the horizontal gap, in PDF points, beyond which adjacent
// fragments on a line are separated by a space.
const fragmentGap = 1.0

// Native extracts page text with the pure-Go ledongthuc/pdf reader. Text
// fragments are regrouped into visual lines by Y coordinate and ordered
// left to right, top of page first.
type Native struct {
	tolerance float64
}

// NewNative creates the pure-Go extractor. A tolerance of 0 selects the
// default (2.0 points).
func NewNative(tolerance float64) *Native {
	if tolerance <= 0 {
		tolerance = defaultLineTolerance
	}
	return &Native{tolerance: tolerance}
}

// ExtractPage returns the text lines of the 1-based page number.
func (n *Native) ExtractPage(path string, pageNum int) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if pageNum < 1 || pageNum > r.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageNum, r.NumPage())
	}

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d is empty", pageNum)
	}

	return GroupLines(page.Content().Text, n.tolerance), nil
}

// line accumulates the fragments of one visual row during grouping.
type line struct {
	y     float64
	frags []pdf.Text
}

// GroupLines regroups raw text fragments into visual lines. Fragments whose
// Y coordinates differ by less than tolerance share a line; lines are
// ordered top of page first (descending Y, PDF origin bottom-left) and
// fragments within a line left to right. Fragments separated by more than a
// glyph-kerning gap are joined with a single space.
func GroupLines(texts []pdf.Text, tolerance float64) []string {
	var lines []line

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range lines {
			if abs(lines[i].y-t.Y) < tolerance {
				lines[i].frags = append(lines[i].frags, t)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: t.Y, frags: []pdf.Text{t}})
		}
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		out = append(out, renderLine(ln.frags))
	}
	return out
}

// renderLine concatenates a line's fragments in X order, inserting a space
// wherever the horizontal gap between fragments exceeds glyph kerning.
func renderLine(frags []pdf.Text) string {
	sort.Slice(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

	var b strings.Builder
	cursor := 0.0
	for i, f := range frags {
		if i > 0 && f.X > cursor+fragmentGap {
			b.WriteByte(' ')
		}
		b.WriteString(f.S)
		cursor = f.X + f.W
	}
	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// New selects an extractor backend from configuration.
func New(cfg types.ExtractConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendPdftotext:
		return NewPdftotext()
	case types.BackendNative, "":
		return NewNative(cfg.LineTolerance), nil
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", cfg.Backend)
	}
}
