package datastore

import (
	"database/sql"
	"time"
)

// Run statuses.
const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// EvaluationRun maps to the evaluation_runs table. One row per batch
// evaluation of a texts directory against a single ground truth.
type EvaluationRun struct {
	ID              string         `json:"id"` // UUID
	RunName         sql.NullString `json:"run_name,omitempty"`
	Status          string         `json:"status"`
	TextsDir        string         `json:"texts_dir"`
	GroundTruthPath sql.NullString `json:"gt_path,omitempty"`
	TranscriptCount int            `json:"transcript_count"`
	OverallPassed   sql.NullBool   `json:"overall_passed,omitempty"`
	ErrorMessage    sql.NullString `json:"error_message,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	CompletedAt     sql.NullTime   `json:"completed_at,omitempty"`
}
