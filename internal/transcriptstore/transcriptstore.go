// Package transcriptstore discovers the transcript files for one evaluation
// run from a local texts directory laid out as:
//
//	<texts>/gt/<single ground truth>.txt
//	<texts>/<hypothesis>.txt ...
//	<texts>/latency.json          (optional performance metadata map)
//
// The latency map is keyed by hypothesis file name; each entry is either a
// bare number of milliseconds or {"latency_ms": ..., "rtf": ...}.
package transcriptstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LatencyMapFileName is the optional performance-metadata file looked up
// inside the texts directory.
const LatencyMapFileName = "latency.json"

// ErrMissingReference means zero or more than one ground-truth file was
// found. No per-transcript evaluation is possible, so the whole run aborts.
var ErrMissingReference = errors.New("ground truth discovery failed")

// Transcript is one (name, hypothesis) pair discovered for evaluation.
type Transcript struct {
	Name    string // file name without extension, e.g. "transcript1"
	HypPath string
	Text    string
}

// Bundle is everything the evaluation engine needs for one run, fully
// materialized in memory.
type Bundle struct {
	GroundTruthPath string
	GroundTruth     string
	Transcripts     []Transcript
	LatencyMap      map[string]json.RawMessage
}

// Discover scans textsDir and loads the ground truth, every hypothesis
// transcript (ordered by file name), and the latency map if present.
func Discover(textsDir string) (*Bundle, error) {
	gtPath, err := findGroundTruth(filepath.Join(textsDir, "gt"))
	if err != nil {
		return nil, err
	}

	gtText, err := readTextFile(gtPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth: %w", err)
	}

	transcripts, err := findHypotheses(textsDir)
	if err != nil {
		return nil, err
	}

	latencyMap, err := readLatencyMap(filepath.Join(textsDir, LatencyMapFileName))
	if err != nil {
		return nil, err
	}

	return &Bundle{
		GroundTruthPath: gtPath,
		GroundTruth:     gtText,
		Transcripts:     transcripts,
		LatencyMap:      latencyMap,
	}, nil
}

func findGroundTruth(gtDir string) (string, error) {
	entries, err := os.ReadDir(gtDir)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %v", ErrMissingReference, gtDir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		candidates = append(candidates, filepath.Join(gtDir, entry.Name()))
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: no .txt file in %s", ErrMissingReference, gtDir)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w: expected exactly one .txt file in %s, found %d", ErrMissingReference, gtDir, len(candidates))
	}
}

func findHypotheses(textsDir string) ([]Transcript, error) {
	entries, err := os.ReadDir(textsDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read texts directory %s: %w", textsDir, err)
	}

	var transcripts []Transcript
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(textsDir, entry.Name())
		text, err := readTextFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
		}
		transcripts = append(transcripts, Transcript{
			Name:    strings.TrimSuffix(entry.Name(), ".txt"),
			HypPath: path,
			Text:    text,
		})
	}

	if len(transcripts) == 0 {
		return nil, fmt.Errorf("no hypothesis transcripts (*.txt) found in %s", textsDir)
	}

	// os.ReadDir already sorts by name, but keep the ordering explicit since
	// report and exit-code aggregation depend on it.
	sort.Slice(transcripts, func(i, j int) bool { return transcripts[i].Name < transcripts[j].Name })
	return transcripts, nil
}

func readLatencyMap(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // The latency map is optional.
		}
		return nil, fmt.Errorf("failed to read latency map %s: %w", path, err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse latency map %s: %w", path, err)
	}
	return entries, nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
