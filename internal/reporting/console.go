// Package reporting serializes evaluation records for human and machine
// consumers: a plain-text console report and a structured JSON report file.
package reporting

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/coreengine/evaluationengine"
)

// metricLines fixes the display order and labels of the console report.
var metricLines = []struct {
	label   string
	metric  string
	evalKey string
}{
	{"TF-IDF Similarity:", evaluationengine.MetricTFIDFSimilarity, "tfidf_passed"},
	{"Word Error Rate:", evaluationengine.MetricWordErrorRate, "wer_passed"},
	{"Character Error Rate:", evaluationengine.MetricCharacterErrorRate, "cer_passed"},
	{"Levenshtein Similarity:", evaluationengine.MetricLevenshteinSimilarity, ""},
	{"Jaccard Similarity:", evaluationengine.MetricJaccardSimilarity, ""},
	{"Latency (ms):", evaluationengine.MetricLatencyMs, "latency_passed"},
	{"Real-Time Factor:", evaluationengine.MetricRTF, "rtf_passed"},
}

// WriteConsoleReport renders the full human-readable run report: header,
// transcriptor info, thresholds, then one block per evaluation record in
// order.
func WriteConsoleReport(w io.Writer, thresholds config.Thresholds, transcriptor config.Transcriptor, records []*evaluationengine.EvaluationRecord) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TRANSCRIPTION QUALITY METRICS REPORT")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "Transcriptor Info:")
	fmt.Fprintf(w, "  Name: %s\n", transcriptor.Name)
	fmt.Fprintf(w, "  Version: %s\n", transcriptor.Version)
	fmt.Fprintf(w, "  Environment: %s\n", transcriptor.Environment)
	fmt.Fprintln(w, strings.Repeat("-", 80))

	fmt.Fprintln(w, "Thresholds:")
	fmt.Fprintf(w, "  wer_threshold: %g\n", thresholds.WER)
	fmt.Fprintf(w, "  cer_threshold: %g\n", thresholds.CER)
	fmt.Fprintf(w, "  tfidf_threshold: %g\n", thresholds.TFIDF)
	fmt.Fprintf(w, "  latency_threshold_ms: %g\n", thresholds.LatencyMs)
	fmt.Fprintf(w, "  rtf_threshold: %g\n", thresholds.RTF)

	for _, record := range records {
		writeRecord(w, record)
	}
}

func writeRecord(w io.Writer, record *evaluationengine.EvaluationRecord) {
	fmt.Fprintf(w, "\n%s (%s)\n", record.Name, filepath.Base(record.HypothesisPath))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintln(w, "Metrics:")

	for _, line := range metricLines {
		value, hasValue := record.Metrics[line.metric]
		text := "N/A"
		if hasValue {
			text = fmt.Sprintf("%.3f", value)
		}
		if line.evalKey == "" {
			// Unthresholded metric: informational only.
			fmt.Fprintf(w, "  %-23s %s\n", line.label, text)
			continue
		}
		pass, evaluated := record.Evaluations[line.evalKey]
		if !evaluated {
			fmt.Fprintf(w, "  %-23s %s  -> not evaluated\n", line.label, text)
			continue
		}
		fmt.Fprintf(w, "  %-23s %s  -> pass: %v %s\n", line.label, text, pass, passIcon(pass))
	}

	for _, note := range record.Notes {
		fmt.Fprintf(w, "  note: %s\n", note)
	}

	fmt.Fprintf(w, "\n  Overall Result (%d/%d): pass: %v %s\n",
		record.PassedMetrics, record.TotalMetrics, record.OverallPassed, passIcon(record.OverallPassed))
}

func passIcon(passed bool) string {
	if passed {
		return "[OK]"
	}
	return "[FAIL]"
}
