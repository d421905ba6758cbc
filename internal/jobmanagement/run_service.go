// Package jobmanagement orchestrates batch evaluation runs: transcript
// discovery, per-transcript metric evaluation, optional persistence, and
// the aggregate pass/fail verdict the process exit status derives from.
package jobmanagement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/coreengine/evaluationengine"
	"transcription-qa-platform/internal/coreengine/performance"
	"transcription-qa-platform/internal/datastore"
	"transcription-qa-platform/internal/objectstore"
	"transcription-qa-platform/internal/reporting"
	"transcription-qa-platform/internal/transcriptstore"
)

// RunService executes evaluation runs against one immutable threshold and
// transcriptor configuration, loaded once at process start.
type RunService struct {
	thresholds   config.Thresholds
	transcriptor config.Transcriptor
}

// NewRunService creates a RunService.
func NewRunService(thresholds config.Thresholds, transcriptor config.Transcriptor) *RunService {
	return &RunService{thresholds: thresholds, transcriptor: transcriptor}
}

// RunOptions parameterizes one evaluation run.
type RunOptions struct {
	RunName  string
	TextsDir string
	// ObjectPrefix, when nonempty, makes the run fetch the transcript
	// bundle from the configured MinIO bucket under this prefix into
	// TextsDir before discovery.
	ObjectPrefix string
}

// RunEvaluation executes one full run synchronously and returns the run
// report. Discovery-level failures (no ground truth, no transcripts) abort
// the run; per-transcript problems degrade to notes on the affected record.
func (s *RunService) RunEvaluation(ctx context.Context, opts RunOptions) (*reporting.RunReport, error) {
	runID := uuid.NewString()
	log.Printf("Starting evaluation run %s (texts dir: %s)", runID, opts.TextsDir)

	if opts.ObjectPrefix != "" {
		if err := objectstore.FetchTranscriptBundle(ctx, opts.ObjectPrefix, opts.TextsDir); err != nil {
			return nil, fmt.Errorf("failed to fetch transcript bundle: %w", err)
		}
	}

	bundle, err := transcriptstore.Discover(opts.TextsDir)
	if err != nil {
		s.recordFailedRun(runID, opts, err)
		return nil, err
	}

	if datastore.Enabled() {
		run := &datastore.EvaluationRun{
			ID:              runID,
			RunName:         sql.NullString{String: opts.RunName, Valid: opts.RunName != ""},
			Status:          datastore.RunStatusRunning,
			TextsDir:        opts.TextsDir,
			GroundTruthPath: sql.NullString{String: bundle.GroundTruthPath, Valid: true},
			TranscriptCount: len(bundle.Transcripts),
		}
		if err := datastore.CreateEvaluationRun(run); err != nil {
			// Persistence is best-effort; the run itself still proceeds.
			log.Printf("Error persisting evaluation run %s: %v", runID, err)
		}
	}

	aggregator := performance.NewAggregator(bundle.LatencyMap)
	engine := evaluationengine.New(s.thresholds, s.transcriptor)

	records := make([]*evaluationengine.EvaluationRecord, 0, len(bundle.Transcripts))
	for _, transcript := range bundle.Transcripts {
		perf := s.lookupPerformance(aggregator, transcript)

		record := engine.EvaluateTranscript(evaluationengine.TranscriptInput{
			Name:            transcript.Name,
			GroundTruthPath: bundle.GroundTruthPath,
			HypothesisPath:  transcript.HypPath,
			GroundTruth:     bundle.GroundTruth,
			Hypothesis:      transcript.Text,
			Performance:     perf,
		})
		records = append(records, record)
		s.persistRecord(runID, record)
	}

	report := reporting.NewRunReport(runID, s.thresholds, s.transcriptor, records)

	if datastore.Enabled() {
		if err := datastore.CompleteEvaluationRun(runID, len(records), report.OverallPassed, ""); err != nil {
			log.Printf("Error completing evaluation run %s: %v", runID, err)
		}
	}

	log.Printf("Completed evaluation run %s: %d transcripts, overall passed: %v", runID, len(records), report.OverallPassed)
	return report, nil
}

// lookupPerformance resolves the latency entry for one transcript. A
// missing entry is expected degradation (latency/RTF simply skipped); a
// malformed entry is logged and treated the same way.
func (s *RunService) lookupPerformance(aggregator *performance.Aggregator, transcript transcriptstore.Transcript) *performance.Record {
	entryKey := transcript.Name + ".txt"
	rec, err := aggregator.Lookup(entryKey)
	if err != nil {
		if errors.Is(err, performance.ErrMissingPerformanceData) {
			log.Printf("Warning: no performance data for %s, skipping latency/rtf evaluation", entryKey)
		} else {
			log.Printf("Warning: %v, skipping latency/rtf evaluation", err)
		}
		return nil
	}
	return &rec
}

func (s *RunService) persistRecord(runID string, record *evaluationengine.EvaluationRecord) {
	if !datastore.Enabled() {
		return
	}

	detailed, err := json.Marshal(record)
	if err != nil {
		log.Printf("Error marshaling record %s for persistence: %v", record.Name, err)
		detailed = nil
	}

	row := &datastore.EvaluationRecordRow{
		RunID:          runID,
		Name:           record.Name,
		HypPath:        record.HypothesisPath,
		WER:            nullMetric(record.Metrics, evaluationengine.MetricWordErrorRate),
		CER:            nullMetric(record.Metrics, evaluationengine.MetricCharacterErrorRate),
		TFIDF:          nullMetric(record.Metrics, evaluationengine.MetricTFIDFSimilarity),
		LatencyMs:      nullMetric(record.Metrics, evaluationengine.MetricLatencyMs),
		RTF:            nullMetric(record.Metrics, evaluationengine.MetricRTF),
		PassedMetrics:  record.PassedMetrics,
		TotalMetrics:   record.TotalMetrics,
		OverallPassed:  record.OverallPassed,
		DetailedReport: detailed,
	}
	if _, err := datastore.CreateEvaluationRecord(row); err != nil {
		log.Printf("Error persisting evaluation record %s (run %s): %v", record.Name, runID, err)
	}
}

func (s *RunService) recordFailedRun(runID string, opts RunOptions, runErr error) {
	if !datastore.Enabled() {
		return
	}
	run := &datastore.EvaluationRun{
		ID:       runID,
		RunName:  sql.NullString{String: opts.RunName, Valid: opts.RunName != ""},
		Status:   datastore.RunStatusRunning,
		TextsDir: opts.TextsDir,
	}
	if err := datastore.CreateEvaluationRun(run); err != nil {
		log.Printf("Error persisting failed evaluation run %s: %v", runID, err)
		return
	}
	if err := datastore.CompleteEvaluationRun(runID, 0, false, runErr.Error()); err != nil {
		log.Printf("Error completing failed evaluation run %s: %v", runID, err)
	}
}

func nullMetric(metrics map[string]float64, name string) sql.NullFloat64 {
	v, ok := metrics[name]
	return sql.NullFloat64{Float64: v, Valid: ok}
}
