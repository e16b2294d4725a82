// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/murphy-xq/survey-report-scrapr/internal/pdftext"
	"github.com/murphy-xq/survey-report-scrapr/internal/scrape"
	"github.com/murphy-xq/survey-report-scrapr/internal/store"
	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every table in the plan and write tidy records",
	Long: `Scrape runs the full reconstruction pipeline for every table in the scrape
plan: extract the page text, split it into a cell matrix, slice to the
marker-key bounds, assemble row groups, compose headers, and reshape to
long tidy records. Per-table failures are recorded and the batch
continues; the summary distinguishes scraped tables from failed ones.

Records are written to the CSV file named by --out, and to the SQLite
database named by --db when set.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("plan", "scrape-plan.yaml", "scrape plan YAML file")
	scrapeCmd.Flags().String("out", "records.csv", "output CSV path (\"-\" for stdout)")
	scrapeCmd.Flags().String("db", "", "SQLite database path (empty: no database)")
	scrapeCmd.Flags().String("backend", "", "page-text backend: native or pdftotext")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	planPath, _ := cmd.Flags().GetString("plan")
	outPath, _ := cmd.Flags().GetString("out")
	dbPath, _ := cmd.Flags().GetString("db")

	plan, err := types.LoadPlan(planPath)
	if err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	extractor, err := pdftext.New(extractConfig(cmd))
	if err != nil {
		return err
	}

	result := scrape.ScrapeAll(extractor, plan, os.Stdout)

	if outPath != "" {
		if err := writeCSV(outPath, result.Records); err != nil {
			return err
		}
	}

	if dbPath != "" {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveBatch(context.Background(), result); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d table(s) failed scraping", len(result.Failures))
	}
	return nil
}

// extractConfig builds the extractor configuration from flags, falling back
// to the viper config file.
func extractConfig(cmd *cobra.Command) types.ExtractConfig {
	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("extract.backend")
	}
	return types.ExtractConfig{
		Backend:       types.ExtractorBackend(backend),
		LineTolerance: viper.GetFloat64("extract.line_tolerance"),
	}
}

func writeCSV(path string, records []types.TidyRecord) error {
	if path == "-" {
		return store.WriteCSV(os.Stdout, records)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := store.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(records), path)
	return nil
}
