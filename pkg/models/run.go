package models

import (
	"encoding/json"
	"time"
)

// Run statuses for pipeline_runs rows.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PipelineRun is the bookkeeping row for one loader execution.
type PipelineRun struct {
	ID         string          `json:"id" db:"id"`
	Mode       string          `json:"mode" db:"mode"`               // merge | full-refresh
	SourceMode string          `json:"source_mode" db:"source_mode"` // csv | staging
	Status     string          `json:"status" db:"status"`
	Counters   json.RawMessage `json:"counters,omitempty" db:"counters"`
	Error      *string         `json:"error,omitempty" db:"error"`
	StartedAt  time.Time       `json:"started_at" db:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty" db:"finished_at"`
}
