package jobmanagement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/coreengine/evaluationengine"
	"transcription-qa-platform/internal/transcriptstore"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testService() *RunService {
	return NewRunService(
		config.Thresholds{WER: 0.15, CER: 0.1, TFIDF: 0.75, LatencyMs: 800, RTF: 0.8},
		config.Transcriptor{Name: "whisper-ci", Version: "1.2.3", Environment: "staging"},
	)
}

// Full run against a local texts directory with the database and object
// store disabled: one clean transcript, one degraded one, a latency entry
// only for the first.
func TestRunEvaluationLocalDir(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "gt", "transcript_gt.txt"), "the weather is nice today")
	writeTestFile(t, filepath.Join(dir, "transcript1.txt"), "The weather is nice today.")
	writeTestFile(t, filepath.Join(dir, "transcript2.txt"), "whether it rains or not")
	writeTestFile(t, filepath.Join(dir, "latency.json"), `{"transcript1.txt": {"latency_ms": 650, "rtf": 0.5}}`)

	report, err := testService().RunEvaluation(context.Background(), RunOptions{TextsDir: dir})
	if err != nil {
		t.Fatalf("RunEvaluation returned error: %v", err)
	}

	if report.RunID == "" {
		t.Error("report has no run ID")
	}
	if len(report.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(report.Records))
	}

	first := report.Records[0]
	if first.Name != "transcript1" {
		t.Fatalf("records out of order: first is %q", first.Name)
	}
	if !first.OverallPassed {
		t.Errorf("transcript1 failed: %+v", first)
	}
	if first.TotalMetrics != 5 {
		t.Errorf("transcript1 TotalMetrics = %d, want 5 (latency entry carries rtf)", first.TotalMetrics)
	}
	if lat := first.Metrics[evaluationengine.MetricLatencyMs]; lat != 650 {
		t.Errorf("transcript1 latency = %v, want 650", lat)
	}

	second := report.Records[1]
	if second.OverallPassed {
		t.Errorf("transcript2 passed despite an unrelated hypothesis: %+v", second)
	}
	if _, ok := second.Metrics[evaluationengine.MetricLatencyMs]; ok {
		t.Error("transcript2 has latency despite no entry in the latency map")
	}
	if second.TotalMetrics != 3 {
		t.Errorf("transcript2 TotalMetrics = %d, want 3", second.TotalMetrics)
	}

	if report.OverallPassed {
		t.Error("run-level verdict passed despite a failing record")
	}
}

func TestRunEvaluationAllPassing(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "gt", "transcript_gt.txt"), "the weather is nice today")
	writeTestFile(t, filepath.Join(dir, "transcript1.txt"), "the weather is nice today")

	report, err := testService().RunEvaluation(context.Background(), RunOptions{TextsDir: dir})
	if err != nil {
		t.Fatalf("RunEvaluation returned error: %v", err)
	}
	if !report.OverallPassed {
		t.Errorf("run-level verdict = false, want true: %+v", report.Records[0])
	}
}

func TestRunEvaluationMissingGroundTruthAborts(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "transcript1.txt"), "text with no reference")

	report, err := testService().RunEvaluation(context.Background(), RunOptions{TextsDir: dir})
	if !errors.Is(err, transcriptstore.ErrMissingReference) {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
	if report != nil {
		t.Errorf("report = %+v, want nil on an aborted run", report)
	}
}

// A malformed latency entry degrades that transcript to text metrics only
// instead of aborting the run.
func TestRunEvaluationMalformedLatencyEntry(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "gt", "transcript_gt.txt"), "the weather is nice today")
	writeTestFile(t, filepath.Join(dir, "transcript1.txt"), "the weather is nice today")
	writeTestFile(t, filepath.Join(dir, "latency.json"), `{"transcript1.txt": {"rtf": 0.5}}`)

	report, err := testService().RunEvaluation(context.Background(), RunOptions{TextsDir: dir})
	if err != nil {
		t.Fatalf("RunEvaluation returned error: %v", err)
	}
	record := report.Records[0]
	if _, ok := record.Metrics[evaluationengine.MetricLatencyMs]; ok {
		t.Error("latency evaluated from an entry missing latency_ms")
	}
	if record.TotalMetrics != 3 || !record.OverallPassed {
		t.Errorf("record = %d metrics, passed=%v; want 3 text metrics passing", record.TotalMetrics, record.OverallPassed)
	}
}
