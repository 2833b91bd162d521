// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// Runs returns the most recent runs first. limit <= 0 returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.RunRecord, error) {
	query := `SELECT id, tax_id, started_at, finished_at, status, selected, batches, files, error
		FROM runs ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var (
			r        types.RunRecord
			started  string
			finished sql.NullString
			status   string
			errText  sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.TaxID, &started, &finished, &status,
			&r.Selected, &r.Batches, &r.Files, &errText); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Status = types.RunStatus(status)
		r.Error = errText.String
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			r.StartedAt = t
		}
		if finished.Valid {
			if t, err := time.Parse(time.RFC3339Nano, finished.String); err == nil {
				r.FinishedAt = t
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the files a run wrote, in write order.
func (s *Store) Files(ctx context.Context, runID string) ([]types.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, batch, name, entry, bytes, records, bases
		 FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []types.FileRecord
	for rows.Next() {
		var f types.FileRecord
		if err := rows.Scan(&f.RunID, &f.Batch, &f.Name, &f.Entry, &f.Bytes, &f.Records, &f.Bases); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// SelectedAccessions returns the accessions a run selected, in response order.
func (s *Store) SelectedAccessions(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT accession FROM assemblies WHERE run_id = ? AND selected = 1 ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying assemblies: %w", err)
	}
	defer rows.Close()

	var accessions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scanning assembly: %w", err)
		}
		accessions = append(accessions, a)
	}
	return accessions, rows.Err()
}
