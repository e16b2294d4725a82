package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "survey-report-scrapr/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the report acquisition stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// ReportsDir is the base directory for report PDFs (contains raw/).
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}

// ExtractorBackend identifies the page-text extraction backend.
type ExtractorBackend string

const (
	BackendNative    ExtractorBackend = "native"
	BackendPdftotext ExtractorBackend = "pdftotext"
)

// ExtractConfig holds settings for page-text extraction.
type ExtractConfig struct {
	// Backend selects the extraction tool: native (pure Go) or pdftotext.
	Backend ExtractorBackend `json:"backend" yaml:"backend"`

	// LineTolerance is the vertical distance, in PDF points, within which
	// text fragments are considered part of the same line (default 2.0).
	// Used by the native backend only.
	LineTolerance float64 `json:"line_tolerance" yaml:"line_tolerance"`
}

// StoreConfig holds settings for the record store.
type StoreConfig struct {
	// DBPath is the SQLite database file (e.g. "output/scrapr.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// OutputDir is the directory for exported CSV files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig groups all stage configurations for the scraper.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
