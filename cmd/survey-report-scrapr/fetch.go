// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/murphy-xq/survey-report-scrapr/internal/fetch"
	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the report PDFs the scrape plan refers to",
	Long: `Fetch downloads every report PDF named by a plan entry that carries a
url, writing each to its configured pdf path. Reports already on disk are
skipped, so fetch is safe to re-run.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("plan", "scrape-plan.yaml", "scrape plan YAML file")
	fetchCmd.Flags().Duration("timeout", 60*time.Second, "HTTP request timeout")
	fetchCmd.Flags().Duration("delay", time.Second, "delay between consecutive downloads")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	planPath, _ := cmd.Flags().GetString("plan")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")

	plan, err := types.LoadPlan(planPath)
	if err != nil {
		return err
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent(),
		},
		DownloadDelay: delay,
	}

	client := &http.Client{Timeout: cfg.Timeout}
	result := fetch.FetchAll(context.Background(), client, plan, cfg, os.Stdout)

	if result.HasFailures() {
		return fmt.Errorf("%d report(s) failed downloading", result.Failed)
	}
	return nil
}

func userAgent() string {
	if ua := viper.GetString("fetch.user_agent"); ua != "" {
		return ua
	}
	return "survey-report-scrapr/" + version
}
