package datastore

import (
	"database/sql"
	"encoding/json"
	"time"
)

// EvaluationRecordRow maps to the evaluation_records table: one row per
// hypothesis transcript within a run. The full metrics/evaluations maps are
// stored as JSONB alongside the frequently queried columns.
type EvaluationRecordRow struct {
	ID             int             `json:"id"`
	RunID          string          `json:"run_id"` // Foreign key to evaluation_runs
	Name           string          `json:"name"`
	HypPath        string          `json:"hyp_path"`
	WER            sql.NullFloat64 `json:"wer,omitempty"`
	CER            sql.NullFloat64 `json:"cer,omitempty"`
	TFIDF          sql.NullFloat64 `json:"tfidf_similarity,omitempty"`
	LatencyMs      sql.NullFloat64 `json:"latency_ms,omitempty"`
	RTF            sql.NullFloat64 `json:"rtf,omitempty"`
	PassedMetrics  int             `json:"passed_metrics"`
	TotalMetrics   int             `json:"total_metrics"`
	OverallPassed  bool            `json:"overall_passed"`
	DetailedReport json.RawMessage `json:"detailed_report,omitempty"` // Full EvaluationRecord as JSON
	CreatedAt      time.Time       `json:"created_at"`
}
