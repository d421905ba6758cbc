// Package config loads the evaluation thresholds and transcriptor identity
// metadata from environment variables at process start. The resulting
// structs are immutable for the duration of a run; nothing in the engine
// re-reads the environment mid-run.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Documented threshold defaults, applied when a variable is unset or not
// parseable as a number.
const (
	DefaultWERThreshold       = 0.15
	DefaultCERThreshold       = 0.1
	DefaultTFIDFThreshold     = 0.75
	DefaultLatencyThresholdMs = 800.0
	DefaultRTFThreshold       = 0.8
)

// Thresholds holds the numeric limits each metric is gated against.
// Lower-is-better metrics (WER, CER, latency, RTF) pass at value <= limit;
// the TF-IDF similarity is higher-is-better and passes at value >= limit.
type Thresholds struct {
	WER       float64 `json:"wer_threshold"`
	CER       float64 `json:"cer_threshold"`
	TFIDF     float64 `json:"tfidf_threshold"`
	LatencyMs float64 `json:"latency_threshold_ms"`
	RTF       float64 `json:"rtf_threshold"`
}

// Transcriptor identifies the system that produced the transcripts under
// evaluation. The engine treats it as opaque metadata and simply attaches
// it to every evaluation record.
type Transcriptor struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// LoadThresholds reads the threshold environment variables, falling back to
// the documented defaults with a logged warning on unparseable values.
// Unset variables fall back silently.
func LoadThresholds() Thresholds {
	return Thresholds{
		WER:       getEnvFloat("WER_THRESHOLD", DefaultWERThreshold),
		CER:       getEnvFloat("CER_THRESHOLD", DefaultCERThreshold),
		TFIDF:     getEnvFloat("TFIDF_THRESHOLD", DefaultTFIDFThreshold),
		LatencyMs: getEnvFloat("LATENCY_THRESHOLD_MS", DefaultLatencyThresholdMs),
		RTF:       getEnvFloat("RTF_THRESHOLD", DefaultRTFThreshold),
	}
}

// LoadTranscriptor reads the transcriptor identity variables. Every field
// defaults to "unknown" so reports always carry the block.
func LoadTranscriptor() Transcriptor {
	return Transcriptor{
		Name:        getEnvString("TRANSCRIPTOR_NAME", "unknown"),
		Version:     getEnvString("TRANSCRIPTOR_VERSION", "unknown"),
		Environment: getEnvString("TRANSCRIPTOR_ENVIRONMENT", "unknown"),
	}
}

func getEnvFloat(name string, def float64) float64 {
	raw, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		log.Printf("Warning: invalid value for %s='%s', falling back to default %v. Error: %v", name, raw, def, err)
		return def
	}
	return v
}

func getEnvString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
