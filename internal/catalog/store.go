// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records fetch runs in a SQLite database: the descriptors
// each run saw, which were selected, and the files written. The catalog is
// an audit trail; fetching never consults it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/genome-fetch/internal/search"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			tax_id INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			status TEXT NOT NULL,
			selected INTEGER NOT NULL DEFAULT 0,
			batches INTEGER NOT NULL DEFAULT 0,
			files INTEGER NOT NULL DEFAULT 0,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS assemblies (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			accession TEXT,
			level TEXT,
			category TEXT,
			org_name TEXT,
			tax_id TEXT,
			selected INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id TEXT NOT NULL REFERENCES runs(id),
			batch INTEGER NOT NULL,
			name TEXT NOT NULL,
			entry TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			records INTEGER NOT NULL,
			bases INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assemblies_accession ON assemblies(accession)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a run in the running state.
func (s *Store) BeginRun(ctx context.Context, runID string, taxID int, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, tax_id, started_at, status) VALUES (?, ?, ?, ?)`,
		runID, taxID, startedAt.UTC().Format(time.RFC3339Nano), string(types.RunRunning),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", runID, err)
	}
	return nil
}

// RecordAssemblies stores every descriptor the run fetched, in response
// order, flagging the selected ones.
func (s *Store) RecordAssemblies(ctx context.Context, runID string, descs []types.AssemblyDescriptor) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assemblies (run_id, position, accession, level, category, org_name, tax_id, selected)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range descs {
		if _, err := stmt.ExecContext(ctx,
			runID, i, d.Accession, d.Level, d.Category, d.OrganismName, d.TaxID, search.Selected(d),
		); err != nil {
			return fmt.Errorf("inserting assembly %q: %w", d.Accession, err)
		}
	}
	return tx.Commit()
}

// RecordFiles stores the files one batch wrote.
func (s *Store) RecordFiles(ctx context.Context, runID string, batch int, files []types.OutputFile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files (run_id, batch, name, entry, bytes, records, bases) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, batch, f.Name, f.Entry, f.Bytes, f.Records, f.Bases,
		); err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Name, err)
		}
	}
	return tx.Commit()
}

// FinishRun records the outcome of a run. runErr, when non-nil, marks the
// run failed and stores its message.
func (s *Store) FinishRun(ctx context.Context, rec types.RunRecord, runErr error) error {
	status := types.RunSucceeded
	var errText sql.NullString
	if runErr != nil {
		status = types.RunFailed
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, selected = ?, batches = ?, files = ?, error = ?
		 WHERE id = ?`,
		rec.FinishedAt.UTC().Format(time.RFC3339Nano), string(status),
		rec.Selected, rec.Batches, rec.Files, errText, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", rec.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", rec.ID)
	}
	return nil
}
