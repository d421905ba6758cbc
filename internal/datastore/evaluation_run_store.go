package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotInitialized is returned by every store function when persistence
// was not configured for this process.
var ErrNotInitialized = errors.New("database connection not initialized")

// CreateEvaluationRun inserts a new run row with RUNNING status.
func CreateEvaluationRun(run *EvaluationRun) error {
	if DB == nil {
		return ErrNotInitialized
	}

	query := `
		INSERT INTO evaluation_runs (id, run_name, status, texts_dir, gt_path, transcript_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	run.CreatedAt = time.Now()
	if run.Status == "" {
		run.Status = RunStatusRunning
	}

	_, err := DB.Exec(
		query,
		run.ID,
		run.RunName,
		run.Status,
		run.TextsDir,
		run.GroundTruthPath,
		run.TranscriptCount,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluation run: %w", err)
	}
	return nil
}

// CompleteEvaluationRun marks a run COMPLETED (or FAILED when errMessage is
// nonempty) and records the aggregate verdict.
func CompleteEvaluationRun(runID string, transcriptCount int, overallPassed bool, errMessage string) error {
	if DB == nil {
		return ErrNotInitialized
	}

	status := RunStatusCompleted
	errSQL := sql.NullString{}
	if errMessage != "" {
		status = RunStatusFailed
		errSQL = sql.NullString{String: errMessage, Valid: true}
	}

	query := `
		UPDATE evaluation_runs
		SET status = $2, transcript_count = $3, overall_passed = $4, error_message = $5, completed_at = $6
		WHERE id = $1
	`
	result, err := DB.Exec(query, runID, status, transcriptCount,
		sql.NullBool{Bool: overallPassed, Valid: errMessage == ""}, errSQL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to complete evaluation run %s: %w", runID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("evaluation run %s not found", runID)
	}
	return nil
}

// GetEvaluationRun retrieves a run by its UUID.
func GetEvaluationRun(runID string) (*EvaluationRun, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}

	query := `
		SELECT id, run_name, status, texts_dir, gt_path, transcript_count, overall_passed, error_message, created_at, completed_at
		FROM evaluation_runs
		WHERE id = $1
	`
	run := &EvaluationRun{}
	err := DB.QueryRow(query, runID).Scan(
		&run.ID,
		&run.RunName,
		&run.Status,
		&run.TextsDir,
		&run.GroundTruthPath,
		&run.TranscriptCount,
		&run.OverallPassed,
		&run.ErrorMessage,
		&run.CreatedAt,
		&run.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("evaluation run %s not found", runID)
		}
		return nil, fmt.Errorf("failed to get evaluation run %s: %w", runID, err)
	}
	return run, nil
}

// ListEvaluationRuns returns all runs, newest first.
func ListEvaluationRuns() ([]*EvaluationRun, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}

	query := `
		SELECT id, run_name, status, texts_dir, gt_path, transcript_count, overall_passed, error_message, created_at, completed_at
		FROM evaluation_runs
		ORDER BY created_at DESC
	`
	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluation runs: %w", err)
	}
	defer rows.Close()

	runs := []*EvaluationRun{}
	for rows.Next() {
		run := &EvaluationRun{}
		if err := rows.Scan(
			&run.ID,
			&run.RunName,
			&run.Status,
			&run.TextsDir,
			&run.GroundTruthPath,
			&run.TranscriptCount,
			&run.OverallPassed,
			&run.ErrorMessage,
			&run.CreatedAt,
			&run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for evaluation runs: %w", err)
	}
	return runs, nil
}
