package datastore

import (
	"encoding/json"
	"fmt"
	"time"
)

// CreateEvaluationRecord inserts one per-transcript record for a run.
func CreateEvaluationRecord(row *EvaluationRecordRow) (int, error) {
	if DB == nil {
		return 0, ErrNotInitialized
	}

	query := `
		INSERT INTO evaluation_records (
			run_id, name, hyp_path,
			wer, cer, tfidf_similarity, latency_ms, rtf,
			passed_metrics, total_metrics, overall_passed,
			detailed_report, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	row.CreatedAt = time.Now()

	var detailedJSON []byte
	if len(row.DetailedReport) > 0 {
		detailedJSON = row.DetailedReport
	} else {
		detailedJSON = json.RawMessage("null")
	}

	var id int
	err := DB.QueryRow(
		query,
		row.RunID,
		row.Name,
		row.HypPath,
		row.WER,
		row.CER,
		row.TFIDF,
		row.LatencyMs,
		row.RTF,
		row.PassedMetrics,
		row.TotalMetrics,
		row.OverallPassed,
		detailedJSON,
		row.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create evaluation record: %w", err)
	}
	row.ID = id
	return id, nil
}

// GetEvaluationRecordsForRun retrieves all per-transcript records for a run
// in insertion order.
func GetEvaluationRecordsForRun(runID string) ([]*EvaluationRecordRow, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}

	query := `
		SELECT id, run_id, name, hyp_path,
		       wer, cer, tfidf_similarity, latency_ms, rtf,
		       passed_metrics, total_metrics, overall_passed,
		       detailed_report, created_at
		FROM evaluation_records
		WHERE run_id = $1
		ORDER BY id ASC
	`
	rows, err := DB.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation records for run %s: %w", runID, err)
	}
	defer rows.Close()

	records := []*EvaluationRecordRow{}
	for rows.Next() {
		row := &EvaluationRecordRow{}
		var detailedJSON []byte
		if err := rows.Scan(
			&row.ID,
			&row.RunID,
			&row.Name,
			&row.HypPath,
			&row.WER,
			&row.CER,
			&row.TFIDF,
			&row.LatencyMs,
			&row.RTF,
			&row.PassedMetrics,
			&row.TotalMetrics,
			&row.OverallPassed,
			&detailedJSON,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation record row for run %s: %w", runID, err)
		}
		if detailedJSON != nil && string(detailedJSON) != "null" {
			row.DetailedReport = json.RawMessage(detailedJSON)
		}
		records = append(records, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for evaluation records (run %s): %w", runID, err)
	}
	return records, nil
}
