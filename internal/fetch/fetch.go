// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads the report PDFs a scrape plan refers to.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/murphy-xq/survey-report-scrapr/internal/httputil"
	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of reports processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchReport downloads one report PDF to its configured path. If the file
// already exists on disk the download is skipped; the skipped return value
// reports which happened.
func FetchReport(ctx context.Context, client *http.Client, table types.TableConfig, cfg types.FetchConfig, w io.Writer) (skipped bool, err error) {
	if table.URL == "" {
		return false, fmt.Errorf("no url configured for %s", table.Source)
	}

	if _, err := os.Stat(table.PDF); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", table.Source)
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(table.PDF), 0o755); err != nil {
		return false, fmt.Errorf("creating directory: %w", err)
	}

	fmt.Fprintf(w, "downloading: %s\n", table.Source)

	if err := downloadFile(ctx, client, table.URL, table.PDF, cfg); err != nil {
		return false, fmt.Errorf("downloading %s: %w", table.Source, err)
	}
	return false, nil
}

// FetchAll downloads every distinct report PDF the plan refers to, printing
// per-report status and returning a summary. It continues after individual
// failures and applies a delay between consecutive downloads. Plan entries
// sharing a PDF path are fetched once.
func FetchAll(ctx context.Context, client *http.Client, plan *types.Plan, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	seen := make(map[string]bool)

	for _, table := range plan.Tables {
		if table.URL == "" || seen[table.PDF] {
			continue
		}
		seen[table.PDF] = true

		if result.Downloaded > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}

		wasSkipped, err := FetchReport(ctx, client, table, cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", table.Source, err)
			result.Failed++
		case wasSkipped:
			result.Skipped++
		default:
			result.Downloaded++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// downloadFile fetches url to destPath using a temporary file so a partial
// download never lands at the final path. Rate limiting and transient host
// errors (HTTP 429, 503) are retried with backoff; any other non-200
// status fails the report.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.FetchConfig) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
