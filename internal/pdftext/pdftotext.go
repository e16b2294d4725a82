// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Pdftotext extracts page text by shelling out to the poppler pdftotext
// tool with -layout, which preserves the visual column alignment of table
// pages. The binary must be on PATH.
type Pdftotext struct {
	bin string
}

// NewPdftotext creates the exec-based extractor, verifying that the
// pdftotext binary is available.
func NewPdftotext() (*Pdftotext, error) {
	bin, err := exec.LookPath("pdftotext")
	if err != nil {
		return nil, fmt.Errorf("pdftotext not found on PATH: %w", err)
	}
	return &Pdftotext{bin: bin}, nil
}

// ExtractPage runs pdftotext -layout restricted to the single page and
// splits its stdout into lines. Trailing blank lines are dropped; interior
// blank lines are kept, since fully-empty rows are the slicer's concern.
func (p *Pdftotext) ExtractPage(path string, page int) ([]string, error) {
	pageArg := strconv.Itoa(page)
	cmd := exec.Command(p.bin, "-layout", "-f", pageArg, "-l", pageArg, path, "-")

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errBuf.String())
		if msg != "" {
			return nil, fmt.Errorf("pdftotext %s page %d: %s: %w", path, page, msg, err)
		}
		return nil, fmt.Errorf("pdftotext %s page %d: %w", path, page, err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n\f"), "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, "\f")
	}
	return lines, nil
}
