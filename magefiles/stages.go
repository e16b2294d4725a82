//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Fetch builds the CLI and downloads the report PDFs in the default plan.
func Fetch() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "fetch")
}

// Scrape builds the CLI and scrapes every table in the default plan,
// writing records to output/records.csv and output/scrapr.db.
func Scrape() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "scrape",
		"--out", "output/records.csv", "--db", "output/scrapr.db")
}

// Export builds the CLI and prints the stored records as CSV.
func Export() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "export", "--db", "output/scrapr.db")
}
