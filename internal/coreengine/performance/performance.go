// Package performance normalizes per-transcript latency metadata before
// threshold evaluation. The on-disk latency map allows two shapes per
// entry: a bare number of milliseconds, or an object carrying latency_ms
// and optionally a precomputed real-time factor. Downstream code only ever
// sees the resolved Record.
package performance

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingPerformanceData signals that a transcript has no latency entry.
// Latency/RTF evaluation is then skipped for that transcript only; the run
// itself continues.
var ErrMissingPerformanceData = errors.New("no performance data for transcript")

// Record is the normalized performance metadata for one transcript.
// RTF is nil when the entry did not carry one; it is never derived from
// latency alone, since the audio duration is not available here.
type Record struct {
	LatencyMs float64
	RTF       *float64
}

// ParseEntry resolves one raw latency-map entry into a Record.
func ParseEntry(raw json.RawMessage) (Record, error) {
	if len(raw) == 0 {
		return Record{}, fmt.Errorf("empty performance entry")
	}

	// Bare number: latency in milliseconds, no RTF.
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		if ms < 0 {
			return Record{}, fmt.Errorf("negative latency %v ms", ms)
		}
		return Record{LatencyMs: ms}, nil
	}

	var detailed struct {
		LatencyMs *float64 `json:"latency_ms"`
		RTF       *float64 `json:"rtf"`
	}
	if err := json.Unmarshal(raw, &detailed); err != nil {
		return Record{}, fmt.Errorf("malformed performance entry: %w", err)
	}
	if detailed.LatencyMs == nil {
		return Record{}, fmt.Errorf("performance entry is missing latency_ms")
	}
	if *detailed.LatencyMs < 0 {
		return Record{}, fmt.Errorf("negative latency %v ms", *detailed.LatencyMs)
	}
	if detailed.RTF != nil && *detailed.RTF < 0 {
		return Record{}, fmt.Errorf("negative rtf %v", *detailed.RTF)
	}
	return Record{LatencyMs: *detailed.LatencyMs, RTF: detailed.RTF}, nil
}

// Aggregator resolves raw latency-map entries keyed by hypothesis file name.
type Aggregator struct {
	entries map[string]json.RawMessage
}

// NewAggregator wraps the raw latency map produced by transcript discovery.
// A nil map is valid and simply reports every transcript as missing.
func NewAggregator(entries map[string]json.RawMessage) *Aggregator {
	return &Aggregator{entries: entries}
}

// Lookup returns the normalized performance record for the named
// hypothesis file, or ErrMissingPerformanceData when the map has no entry
// for it.
func (a *Aggregator) Lookup(hypName string) (Record, error) {
	raw, ok := a.entries[hypName]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrMissingPerformanceData, hypName)
	}
	rec, err := ParseEntry(raw)
	if err != nil {
		return Record{}, fmt.Errorf("performance entry for %s: %w", hypName, err)
	}
	return rec, nil
}
