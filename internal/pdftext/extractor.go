// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

// Extractor is the page-text contract both backends satisfy. It matches the
// interface the scrape batch runner consumes.
type Extractor interface {
	// ExtractPage returns the ordered text lines of a 1-based page number.
	ExtractPage(path string, page int) ([]string, error)
}
