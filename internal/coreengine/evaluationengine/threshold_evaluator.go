package evaluationengine

import (
	"errors"

	"transcription-qa-platform/internal/config"
)

// Metric names as they appear in the metrics map of every record.
const (
	MetricTFIDFSimilarity       = "tfidf_similarity"
	MetricWordErrorRate         = "word_error_rate"
	MetricCharacterErrorRate    = "character_error_rate"
	MetricLevenshteinSimilarity = "levenshtein_similarity"
	MetricJaccardSimilarity     = "jaccard_similarity"
	MetricLatencyMs             = "latency_ms"
	MetricRTF                   = "rtf"
)

// ErrNoEvaluableMetrics means a transcript ended up with zero metrics that
// have both a value and a configured threshold. That is a configuration
// problem, reported distinctly from an ordinary failed transcript.
var ErrNoEvaluableMetrics = errors.New("no metric had both a value and a threshold")

// Direction states which side of a threshold is the passing side.
type Direction int

const (
	LowerIsBetter Direction = iota
	HigherIsBetter
)

// Threshold pairs a numeric limit with its passing direction.
type Threshold struct {
	Limit     float64
	Direction Direction
}

// ThresholdSet maps metric name to its threshold. It is built once per run
// from configuration and read-only afterwards, so it is safe to share
// across concurrent evaluations. Metrics absent from the set (for example
// the auxiliary similarity metrics) are reported but never gated.
type ThresholdSet map[string]Threshold

// NewThresholdSet expands the configured limits into a per-metric set with
// the correct comparison direction for each metric. The TF-IDF similarity
// is the only higher-is-better metric.
func NewThresholdSet(cfg config.Thresholds) ThresholdSet {
	return ThresholdSet{
		MetricWordErrorRate:      {Limit: cfg.WER, Direction: LowerIsBetter},
		MetricCharacterErrorRate: {Limit: cfg.CER, Direction: LowerIsBetter},
		MetricTFIDFSimilarity:    {Limit: cfg.TFIDF, Direction: HigherIsBetter},
		MetricLatencyMs:          {Limit: cfg.LatencyMs, Direction: LowerIsBetter},
		MetricRTF:                {Limit: cfg.RTF, Direction: LowerIsBetter},
	}
}

// Passes reports whether value is on the passing side of the threshold.
// Boundary values (value == limit) pass regardless of direction.
func (t Threshold) Passes(value float64) bool {
	if t.Direction == HigherIsBetter {
		return value >= t.Limit
	}
	return value <= t.Limit
}

// evaluationKeys maps a metric name to the key its pass/fail flag is
// reported under, e.g. word_error_rate -> wer_passed.
var evaluationKeys = map[string]string{
	MetricWordErrorRate:      "wer_passed",
	MetricCharacterErrorRate: "cer_passed",
	MetricTFIDFSimilarity:    "tfidf_passed",
	MetricLatencyMs:          "latency_passed",
	MetricRTF:                "rtf_passed",
}

// Evaluate gates every metric that has both a computed value and a
// configured threshold. Metrics missing either one are excluded from the
// returned evaluations and from the total count; they never count as
// failures. The overall verdict is the logical AND across all evaluated
// metrics and requires at least one of them; with zero evaluable metrics
// it returns ErrNoEvaluableMetrics.
func (ts ThresholdSet) Evaluate(metrics map[string]float64) (evaluations map[string]bool, passed, total int, overall bool, err error) {
	evaluations = make(map[string]bool)

	for name, value := range metrics {
		threshold, ok := ts[name]
		if !ok {
			continue
		}
		key, hasKey := evaluationKeys[name]
		if !hasKey {
			key = name + "_passed"
		}
		pass := threshold.Passes(value)
		evaluations[key] = pass
		total++
		if pass {
			passed++
		}
	}

	if total == 0 {
		return evaluations, 0, 0, false, ErrNoEvaluableMetrics
	}
	return evaluations, passed, total, passed == total, nil
}
