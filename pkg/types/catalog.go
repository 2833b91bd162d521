// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus is the state of a fetch run recorded in the catalog.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one fetch run as stored in the catalog.
type RunRecord struct {
	ID         string    `json:"id" yaml:"id"`
	TaxID      int       `json:"tax_id" yaml:"tax_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Status     RunStatus `json:"status" yaml:"status"`
	Selected   int       `json:"selected" yaml:"selected"`
	Batches    int       `json:"batches" yaml:"batches"`
	Files      int       `json:"files" yaml:"files"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// FileRecord is one written sequence file as stored in the catalog.
type FileRecord struct {
	OutputFile `yaml:",inline"`

	RunID string `json:"run_id" yaml:"run_id"`
	Batch int    `json:"batch" yaml:"batch"`
}
