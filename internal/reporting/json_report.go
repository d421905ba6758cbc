package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/coreengine/evaluationengine"
)

// RunReport is the machine-readable shape of one full evaluation run.
type RunReport struct {
	RunID         string                               `json:"run_id,omitempty"`
	GeneratedAt   time.Time                            `json:"generated_at"`
	Transcriptor  config.Transcriptor                  `json:"transcriptor"`
	Thresholds    config.Thresholds                    `json:"thresholds"`
	Records       []*evaluationengine.EvaluationRecord `json:"records"`
	OverallPassed bool                                 `json:"overall_passed"`
}

// NewRunReport assembles the run-level report, deriving the aggregate
// verdict from the records.
func NewRunReport(runID string, thresholds config.Thresholds, transcriptor config.Transcriptor, records []*evaluationengine.EvaluationRecord) *RunReport {
	return &RunReport{
		RunID:         runID,
		GeneratedAt:   time.Now().UTC(),
		Transcriptor:  transcriptor,
		Thresholds:    thresholds,
		Records:       records,
		OverallPassed: evaluationengine.AllPassed(records),
	}
}

// WriteJSONReport writes the run report to path as indented JSON.
func WriteJSONReport(path string, report *RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write run report to %s: %w", path, err)
	}
	return nil
}
