// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists tidy records and per-table scrape status in a
// local SQLite database, and exports them as CSV.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/murphy-xq/survey-report-scrapr/internal/scrape"
	"github.com/murphy-xq/survey-report-scrapr/pkg/types"
)

// Store manages the scrape results SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the results database at dbPath, creating the
// schema if it does not exist.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scrapes (
			source TEXT NOT NULL,
			table_id TEXT NOT NULL,
			status TEXT NOT NULL,
			failure_kind TEXT,
			error TEXT,
			records INTEGER NOT NULL DEFAULT 0,
			scraped_at TEXT NOT NULL,
			PRIMARY KEY (source, table_id)
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			survey_type TEXT,
			country TEXT,
			year TEXT,
			table_id TEXT NOT NULL,
			row_group TEXT NOT NULL,
			row_label TEXT NOT NULL,
			indicator TEXT NOT NULL,
			denominator_group TEXT,
			value TEXT,
			denominator_value TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_table ON records(source, table_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_indicator ON records(indicator)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveBatch stores a batch result: tidy records for every scraped table and
// a status row for every table attempted. Re-running a scrape replaces the
// previous records and statuses for the tables it touched, so a fixed
// configuration can be retried per table without clearing the database.
func (s *Store) SaveBatch(ctx context.Context, result scrape.BatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	for _, ref := range result.Scraped {
		if err := s.replaceStatus(ctx, tx, ref.Source, ref.TableID, "scraped", "", "", ref.Records, now); err != nil {
			return err
		}
	}
	for _, f := range result.Failures {
		errMsg := ""
		if f.Err != nil {
			errMsg = f.Err.Error()
		}
		if err := s.replaceStatus(ctx, tx, f.Source, f.TableID, "failed", string(f.Kind), errMsg, 0, now); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (source, survey_type, country, year, table_id,
			row_group, row_label, indicator, denominator_group, value, denominator_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range result.Records {
		_, err := stmt.ExecContext(ctx,
			r.Source, r.SurveyType, r.Country, r.Year, r.TableID,
			r.RowGroup, r.RowLabel, r.Indicator, r.DenomGroup,
			r.Value.String(), r.DenomValue.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting record %s/%s/%s: %w", r.Source, r.TableID, r.Indicator, err)
		}
	}

	return tx.Commit()
}

// replaceStatus upserts a table's scrape status and clears its previous
// records so re-scrapes replace rather than accumulate.
func (s *Store) replaceStatus(ctx context.Context, tx *sql.Tx, source, tableID, status, kind, errMsg string, records int, now string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE source = ? AND table_id = ?`, source, tableID); err != nil {
		return fmt.Errorf("clearing records for %s %s: %w", source, tableID, err)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO scrapes (source, table_id, status, failure_kind, error, records, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source, table_id) DO UPDATE SET
			status=excluded.status, failure_kind=excluded.failure_kind,
			error=excluded.error, records=excluded.records, scraped_at=excluded.scraped_at`,
		source, tableID, status, kind, errMsg, records, now,
	)
	if err != nil {
		return fmt.Errorf("upserting status for %s %s: %w", source, tableID, err)
	}
	return nil
}

// Filter restricts record queries to a source and/or table.
type Filter struct {
	Source  string
	TableID string
}

// Records returns stored tidy records, optionally filtered, in insertion
// order. Cell values round-trip through their rendered form.
func (s *Store) Records(ctx context.Context, f Filter) ([]types.TidyRecord, error) {
	query := `SELECT source, survey_type, country, year, table_id,
		row_group, row_label, indicator, denominator_group, value, denominator_value
		FROM records WHERE 1=1`
	var args []any
	if f.Source != "" {
		query += ` AND source = ?`
		args = append(args, f.Source)
	}
	if f.TableID != "" {
		query += ` AND table_id = ?`
		args = append(args, f.TableID)
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []types.TidyRecord
	for rows.Next() {
		var r types.TidyRecord
		var value, denomValue string
		if err := rows.Scan(&r.Source, &r.SurveyType, &r.Country, &r.Year, &r.TableID,
			&r.RowGroup, &r.RowLabel, &r.Indicator, &r.DenomGroup, &value, &denomValue); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Value = types.ParseValue(value)
		r.DenomValue = types.ParseValue(denomValue)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ScrapeStatus is one table's most recent scrape outcome.
type ScrapeStatus struct {
	Source      string
	TableID     string
	Status      string
	FailureKind string
	Error       string
	Records     int
	ScrapedAt   string
}

// Statuses returns the per-table scrape statuses, failures first so broken
// tables are easy to spot.
func (s *Store) Statuses(ctx context.Context) ([]ScrapeStatus, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, table_id, status, COALESCE(failure_kind, ''), COALESCE(error, ''), records, scraped_at
		 FROM scrapes ORDER BY status, source, table_id`)
	if err != nil {
		return nil, fmt.Errorf("querying statuses: %w", err)
	}
	defer rows.Close()

	var out []ScrapeStatus
	for rows.Next() {
		var st ScrapeStatus
		if err := rows.Scan(&st.Source, &st.TableID, &st.Status, &st.FailureKind,
			&st.Error, &st.Records, &st.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scanning status: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
