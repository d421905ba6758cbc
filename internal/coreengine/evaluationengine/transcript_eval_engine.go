// Package evaluationengine computes the quality metrics for each hypothesis
// transcript, gates them against the configured thresholds, and produces
// one EvaluationRecord per transcript. It is purely computational: all
// inputs (texts, thresholds, performance metadata) are materialized in
// memory before a call, so transcripts can be evaluated sequentially or in
// parallel with identical output.
package evaluationengine

import (
	"fmt"
	"log"

	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/coreengine/metricscalculator"
	"transcription-qa-platform/internal/coreengine/performance"
	"transcription-qa-platform/internal/coreengine/similarityengine"
	"transcription-qa-platform/internal/coreengine/textnormalizer"
)

// TranscriptInput is one hypothesis transcript plus everything needed to
// evaluate it. Performance is nil when no latency entry exists for the
// transcript; latency/RTF evaluation is then skipped, not failed.
type TranscriptInput struct {
	Name            string
	GroundTruthPath string
	HypothesisPath  string
	GroundTruth     string
	Hypothesis      string
	Performance     *performance.Record
}

// EvaluationRecord is the per-transcript result handed to the reporting
// collaborators. Metrics that could not be computed (degenerate input) or
// were not applicable (missing performance data) are absent from Metrics
// and noted in Notes.
type EvaluationRecord struct {
	Name            string               `json:"name"`
	GroundTruthPath string               `json:"gt_path"`
	HypothesisPath  string               `json:"hyp_path"`
	Metrics         map[string]float64   `json:"metrics"`
	Evaluations     map[string]bool      `json:"evaluations"`
	Thresholds      config.Thresholds    `json:"thresholds"`
	Transcriptor    *config.Transcriptor `json:"transcriptor,omitempty"`
	PassedMetrics   int                  `json:"passed_metrics"`
	TotalMetrics    int                  `json:"total_metrics"`
	OverallPassed   bool                 `json:"overall_passed"`
	Notes           []string             `json:"notes,omitempty"`
}

// Engine evaluates transcripts against one immutable threshold
// configuration. Construct it once per run.
type Engine struct {
	normalizer   *textnormalizer.Normalizer
	thresholdCfg config.Thresholds
	thresholds   ThresholdSet
	transcriptor *config.Transcriptor
}

// New creates an Engine with the default text normalization rules.
func New(thresholdCfg config.Thresholds, transcriptor config.Transcriptor) *Engine {
	return &Engine{
		normalizer:   textnormalizer.NewDefault(),
		thresholdCfg: thresholdCfg,
		thresholds:   NewThresholdSet(thresholdCfg),
		transcriptor: &transcriptor,
	}
}

// EvaluateTranscript computes every applicable metric for one transcript
// and gates the thresholded ones. Degenerate inputs (empty reference,
// zero-vector similarity) degrade to "metric not evaluated" with a note;
// they never abort the transcript.
func (e *Engine) EvaluateTranscript(in TranscriptInput) *EvaluationRecord {
	record := &EvaluationRecord{
		Name:            in.Name,
		GroundTruthPath: in.GroundTruthPath,
		HypothesisPath:  in.HypothesisPath,
		Metrics:         make(map[string]float64),
		Thresholds:      e.thresholdCfg,
		Transcriptor:    e.transcriptor,
	}

	if wer, err := metricscalculator.CalculateWER(e.normalizer, in.GroundTruth, in.Hypothesis); err != nil {
		record.Notes = append(record.Notes, fmt.Sprintf("%s not evaluated: %v", MetricWordErrorRate, err))
	} else {
		record.Metrics[MetricWordErrorRate] = wer
	}

	if cer, err := metricscalculator.CalculateCER(e.normalizer, in.GroundTruth, in.Hypothesis); err != nil {
		record.Notes = append(record.Notes, fmt.Sprintf("%s not evaluated: %v", MetricCharacterErrorRate, err))
	} else {
		record.Metrics[MetricCharacterErrorRate] = cer
	}

	// The similarity metrics are total functions: degenerate input yields a
	// defined boundary value (0.0 for disjoint or empty, 1.0 for identical).
	record.Metrics[MetricTFIDFSimilarity] = similarityengine.TFIDFCosineSimilarity(e.normalizer, in.GroundTruth, in.Hypothesis)
	record.Metrics[MetricLevenshteinSimilarity] = metricscalculator.CalculateLevenshteinSimilarity(e.normalizer, in.GroundTruth, in.Hypothesis)
	record.Metrics[MetricJaccardSimilarity] = metricscalculator.CalculateJaccardSimilarity(e.normalizer, in.GroundTruth, in.Hypothesis)

	if in.Performance != nil {
		record.Metrics[MetricLatencyMs] = in.Performance.LatencyMs
		if in.Performance.RTF != nil {
			record.Metrics[MetricRTF] = *in.Performance.RTF
		} else {
			record.Notes = append(record.Notes, fmt.Sprintf("%s not evaluated: no rtf in performance data", MetricRTF))
		}
	} else {
		record.Notes = append(record.Notes, "latency_ms/rtf not evaluated: no performance data for transcript")
	}

	evaluations, passed, total, overall, err := e.thresholds.Evaluate(record.Metrics)
	record.Evaluations = evaluations
	record.PassedMetrics = passed
	record.TotalMetrics = total
	record.OverallPassed = overall
	if err != nil {
		// Zero evaluable metrics is a configuration problem, not a normal
		// fail; surface it loudly on the record and in the log.
		record.Notes = append(record.Notes, fmt.Sprintf("configuration error: %v", err))
		log.Printf("Transcript %s: %v", in.Name, err)
	}
	return record
}

// AllPassed reports the aggregate verdict the process exit status is
// derived from: true iff at least one record exists and every record's
// overall flag is true.
func AllPassed(records []*EvaluationRecord) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if !r.OverallPassed {
			return false
		}
	}
	return true
}
