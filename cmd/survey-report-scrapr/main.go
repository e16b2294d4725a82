// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the survey-report-scrapr CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the survey-report-scrapr CLI.
var rootCmd = &cobra.Command{
	Use:   "survey-report-scrapr",
	Short: "Scrape tabular data out of PDF survey reports",
	Long: `survey-report-scrapr pulls tables out of PDF survey reports (DHS/MICS-style
statistical reports) and reshapes them into tidy indicator records.

A YAML scrape plan lists the (document, page, table) triples to scrape,
each with marker keys bounding the data region and a two-level header
spec. The scrape command reconstructs every table, unions the results,
resolves denominators, and writes CSV and/or a local SQLite database.
fetch downloads the report PDFs a plan refers to; export re-exports
stored records.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./survey-report-scrapr.yaml or ~/.config/survey-report-scrapr/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("survey-report-scrapr")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "survey-report-scrapr"))
		}
	}

	viper.SetEnvPrefix("SURVEY_SCRAPR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
