package evaluationengine

import (
	"errors"
	"testing"

	"transcription-qa-platform/internal/config"
)

func defaultThresholdSet() ThresholdSet {
	return NewThresholdSet(config.Thresholds{
		WER:       0.15,
		CER:       0.1,
		TFIDF:     0.75,
		LatencyMs: 800,
		RTF:       0.8,
	})
}

func TestThresholdPassesBoundary(t *testing.T) {
	lower := Threshold{Limit: 0.15, Direction: LowerIsBetter}
	higher := Threshold{Limit: 0.75, Direction: HigherIsBetter}

	tests := []struct {
		name      string
		threshold Threshold
		value     float64
		want      bool
	}{
		{name: "lower-is-better below", threshold: lower, value: 0.1, want: true},
		{name: "lower-is-better at boundary", threshold: lower, value: 0.15, want: true},
		{name: "lower-is-better above", threshold: lower, value: 0.1501, want: false},
		{name: "higher-is-better above", threshold: higher, value: 0.9, want: true},
		{name: "higher-is-better at boundary", threshold: higher, value: 0.75, want: true},
		{name: "higher-is-better below", threshold: higher, value: 0.7499, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.threshold.Passes(tt.value); got != tt.want {
				t.Errorf("Passes(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestEvaluateAllPass(t *testing.T) {
	ts := defaultThresholdSet()

	evaluations, passed, total, overall, err := ts.Evaluate(map[string]float64{
		MetricWordErrorRate:      0.1,
		MetricCharacterErrorRate: 0.05,
		MetricTFIDFSimilarity:    0.9,
		MetricLatencyMs:          650,
		MetricRTF:                0.5,
	})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if passed != 5 || total != 5 || !overall {
		t.Errorf("got passed=%d total=%d overall=%v, want 5/5 pass", passed, total, overall)
	}
	for _, key := range []string{"wer_passed", "cer_passed", "tfidf_passed", "latency_passed", "rtf_passed"} {
		if pass, ok := evaluations[key]; !ok || !pass {
			t.Errorf("evaluations[%q] = %v, %v; want true", key, pass, ok)
		}
	}
}

func TestEvaluateSingleFailureFailsOverall(t *testing.T) {
	ts := defaultThresholdSet()

	_, passed, total, overall, err := ts.Evaluate(map[string]float64{
		MetricWordErrorRate:      0.5, // fails 0.15
		MetricCharacterErrorRate: 0.05,
		MetricTFIDFSimilarity:    0.9,
	})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if overall {
		t.Error("overall = true despite a failing metric; AND semantics required")
	}
	if passed != 2 || total != 3 {
		t.Errorf("passed=%d total=%d, want 2/3", passed, total)
	}
}

func TestEvaluateExcludesMetricsWithoutThresholds(t *testing.T) {
	ts := defaultThresholdSet()

	evaluations, passed, total, overall, err := ts.Evaluate(map[string]float64{
		MetricWordErrorRate: 0.1,
		// These carry no threshold and must not affect the verdict.
		MetricLevenshteinSimilarity: 0.01,
		MetricJaccardSimilarity:     0.01,
	})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if total != 1 || passed != 1 || !overall {
		t.Errorf("passed=%d total=%d overall=%v, want only WER evaluated and passing", passed, total, overall)
	}
	if len(evaluations) != 1 {
		t.Errorf("evaluations = %v, want only wer_passed", evaluations)
	}
}

func TestEvaluateMissingValuesAreNotFailures(t *testing.T) {
	ts := defaultThresholdSet()

	// No latency/rtf values at all: they are excluded, not failed.
	evaluations, passed, total, overall, err := ts.Evaluate(map[string]float64{
		MetricWordErrorRate:      0.1,
		MetricCharacterErrorRate: 0.05,
		MetricTFIDFSimilarity:    0.9,
	})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if total != 3 || passed != 3 || !overall {
		t.Errorf("passed=%d total=%d overall=%v, want 3/3 pass", passed, total, overall)
	}
	if _, ok := evaluations["latency_passed"]; ok {
		t.Error("latency_passed present despite missing value")
	}
	if _, ok := evaluations["rtf_passed"]; ok {
		t.Error("rtf_passed present despite missing value")
	}
}

func TestEvaluateZeroEvaluableMetrics(t *testing.T) {
	ts := defaultThresholdSet()

	_, _, total, overall, err := ts.Evaluate(map[string]float64{
		MetricLevenshteinSimilarity: 0.5, // unthresholded
	})
	if !errors.Is(err, ErrNoEvaluableMetrics) {
		t.Fatalf("err = %v, want ErrNoEvaluableMetrics", err)
	}
	if overall || total != 0 {
		t.Errorf("overall=%v total=%d, want false/0 for zero evaluable metrics", overall, total)
	}
}
