// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/murphy-xq/survey-report-scrapr/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored tidy records as CSV",
	Long: `Export re-exports records from the SQLite database as CSV, optionally
filtered by source and table. With --status it instead lists each table's
most recent scrape outcome, failures first, so broken tables can be
retried or fixed by hand.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("db", "scrapr.db", "SQLite database path")
	exportCmd.Flags().String("out", "-", "output CSV path (\"-\" for stdout)")
	exportCmd.Flags().String("source", "", "restrict to one source document")
	exportCmd.Flags().String("table", "", "restrict to one table id")
	exportCmd.Flags().Bool("status", false, "list per-table scrape statuses instead of records")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	outPath, _ := cmd.Flags().GetString("out")
	source, _ := cmd.Flags().GetString("source")
	table, _ := cmd.Flags().GetString("table")
	showStatus, _ := cmd.Flags().GetBool("status")

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	if showStatus {
		return printStatuses(ctx, s)
	}

	filter := store.Filter{Source: source, TableID: table}

	if outPath == "-" {
		return s.ExportCSV(ctx, os.Stdout, filter)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := s.ExportCSV(ctx, f, filter); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStatuses(ctx context.Context, s *store.Store) error {
	statuses, err := s.Statuses(ctx)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("No scrapes recorded.")
		return nil
	}

	fmt.Printf("%-24s  %-10s  %-8s  %-16s  %8s  %s\n",
		"Source", "Table", "Status", "Kind", "Records", "Scraped at")
	for _, st := range statuses {
		fmt.Printf("%-24s  %-10s  %-8s  %-16s  %8d  %s\n",
			st.Source, st.TableID, st.Status, st.FailureKind, st.Records, st.ScrapedAt)
		if st.Error != "" {
			fmt.Printf("    %s\n", st.Error)
		}
	}
	return nil
}
