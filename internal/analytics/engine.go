// Package analytics derives trends and process timelines from snapshot
// history. All operations are pure reads over the history store.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	constants "sysdoctor/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/snapshot"
)

// Metric selects which metric trend queries analyze
type Metric string

const (
	MetricCPU    Metric = "cpu"
	MetricMemory Metric = "memory"
	MetricBoth   Metric = "both"
)

// ErrNoHistory is returned when the store holds no snapshots at all
var ErrNoHistory = errors.New("no snapshot history available")

// ErrInsufficientHistory is returned when fewer than two snapshots exist,
// which is too few for any trend analysis
var ErrInsufficientHistory = errors.New("insufficient snapshot history for trend analysis")

// InsufficientWindowError reports that a trend window contained fewer than
// two snapshots, naming the window so the caller can widen it
type InsufficientWindowError struct {
	WindowMinutes int
}

func (e *InsufficientWindowError) Error() string {
	return fmt.Sprintf("not enough snapshots in the last %d minutes", e.WindowMinutes)
}

// HistoryEntry is one simplified snapshot returned by history queries.
// The top process names are only present in tail mode.
type HistoryEntry struct {
	Timestamp        float64    `json:"timestamp"`
	CPUPercent       float64    `json:"cpu_percent"`
	MemoryPercent    float64    `json:"memory_percent"`
	LoadAvg          [3]float64 `json:"load_avg"`
	TopCPUProcess    string     `json:"top_cpu_process,omitempty"`
	TopMemoryProcess string     `json:"top_memory_process,omitempty"`
}

// HistoryResult is the result of a history query
type HistoryResult struct {
	Snapshots []HistoryEntry `json:"snapshots"`
}

// MetricTrend summarizes one metric over a time window
type MetricTrend struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Avg     float64 `json:"avg"`
	Current float64 `json:"current"`
	Change  float64 `json:"change"`
	Trend   string  `json:"trend"` // "increasing" or "decreasing"
}

// TrendSet holds the per-metric trends that were requested
type TrendSet struct {
	CPU    *MetricTrend `json:"cpu,omitempty"`
	Memory *MetricTrend `json:"memory,omitempty"`
}

// TrendsResult is the result of a trend query
type TrendsResult struct {
	TimeWindowMinutes int      `json:"time_window_minutes"`
	SnapshotsAnalyzed int      `json:"snapshots_analyzed"`
	Trends            TrendSet `json:"trends"`
}

// ProcessRecord is one occurrence of a tracked process in a snapshot.
// Source names the list(s) the process appeared in: "cpu_list",
// "memory_list" or "both_lists". A process found in both lists of the same
// snapshot yields a single merged record.
type ProcessRecord struct {
	Timestamp  float64  `json:"timestamp"`
	PID        int      `json:"pid"`
	CPUPercent *float64 `json:"cpu_percent,omitempty"`
	RSSMB      *float64 `json:"rss_mb,omitempty"`
	Source     string   `json:"type"`
}

// ProcessHistoryResult is the result of tracking a process across snapshots
type ProcessHistoryResult struct {
	ProcessName string          `json:"process_name"`
	TargetPID   int             `json:"target_pid,omitempty"`
	History     []ProcessRecord `json:"history"`
}

// Engine answers analytics queries over a history store. It is constructed
// with the store reference and never mutates it.
type Engine struct {
	store *history.Store
	now   func() time.Time
}

// NewEngine creates an analytics engine reading from the given store
func NewEngine(store *history.Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

func (e *Engine) nowEpoch() float64 {
	return float64(e.now().UnixNano()) / 1e9
}

// History returns simplified snapshots from the store. With minutesAgo == 0
// it returns the most recent lastN entries. With minutesAgo > 0 it returns
// entries whose timestamp falls within the fixed tolerance window of
// now - minutesAgo (best-effort by construction, since sampling cadence is
// not exact), capped at lastN. Degraded snapshots are skipped; they carry
// no metric values to report.
func (e *Engine) History(lastN, minutesAgo int) (*HistoryResult, error) {
	snaps := e.store.All()
	if len(snaps) == 0 {
		return nil, ErrNoHistory
	}
	if lastN < 0 {
		lastN = 0
	}

	if minutesAgo > 0 {
		target := e.nowEpoch() - float64(minutesAgo)*60
		entries := make([]HistoryEntry, 0, lastN)
		for _, s := range snaps {
			if s.Degraded() {
				continue
			}
			if math.Abs(s.Timestamp-target) >= constants.HISTORY_TOLERANCE_SECONDS {
				continue
			}
			if len(entries) == lastN {
				break
			}
			entries = append(entries, HistoryEntry{
				Timestamp:     s.Timestamp,
				CPUPercent:    s.CPUPercent,
				MemoryPercent: s.Memory.PercentUsed,
				LoadAvg:       s.LoadAvg,
			})
		}
		return &HistoryResult{Snapshots: entries}, nil
	}

	start := len(snaps) - lastN
	if start < 0 {
		start = 0
	}
	entries := make([]HistoryEntry, 0, len(snaps)-start)
	for _, s := range snaps[start:] {
		if s.Degraded() {
			continue
		}
		entry := HistoryEntry{
			Timestamp:        s.Timestamp,
			CPUPercent:       s.CPUPercent,
			MemoryPercent:    s.Memory.PercentUsed,
			LoadAvg:          s.LoadAvg,
			TopCPUProcess:    "unknown",
			TopMemoryProcess: "unknown",
		}
		if len(s.TopCPU) > 0 {
			entry.TopCPUProcess = s.TopCPU[0].Name
		}
		if len(s.TopMemory) > 0 {
			entry.TopMemoryProcess = s.TopMemory[0].Name
		}
		entries = append(entries, entry)
	}
	return &HistoryResult{Snapshots: entries}, nil
}

// Trends computes min/max/avg/current/change per selected metric over the
// snapshots of the last windowMinutes. Fewer than two snapshots overall
// yields ErrInsufficientHistory; fewer than two inside the window yields an
// InsufficientWindowError naming the window.
func (e *Engine) Trends(metric Metric, windowMinutes int) (*TrendsResult, error) {
	switch metric {
	case MetricCPU, MetricMemory, MetricBoth:
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	snaps := e.store.All()
	if len(snaps) < 2 {
		return nil, ErrInsufficientHistory
	}

	cutoff := e.nowEpoch() - float64(windowMinutes)*60
	relevant := make([]snapshot.Snapshot, 0, len(snaps))
	for _, s := range snaps {
		if s.Degraded() || s.Timestamp < cutoff {
			continue
		}
		relevant = append(relevant, s)
	}
	if len(relevant) < 2 {
		return nil, &InsufficientWindowError{WindowMinutes: windowMinutes}
	}

	result := &TrendsResult{
		TimeWindowMinutes: windowMinutes,
		SnapshotsAnalyzed: len(relevant),
	}

	if metric == MetricCPU || metric == MetricBoth {
		values := make([]float64, len(relevant))
		for i, s := range relevant {
			values[i] = s.CPUPercent
		}
		result.Trends.CPU = trendOf(values)
	}
	if metric == MetricMemory || metric == MetricBoth {
		values := make([]float64, len(relevant))
		for i, s := range relevant {
			values[i] = s.Memory.PercentUsed
		}
		result.Trends.Memory = trendOf(values)
	}
	return result, nil
}

// trendOf summarizes a non-empty value series in window order.
// Equal first and last values resolve to "decreasing"; an arbitrary but
// deterministic tie-break.
func trendOf(values []float64) *MetricTrend {
	t := &MetricTrend{
		Min: values[0],
		Max: values[0],
	}
	sum := 0.0
	for _, v := range values {
		if v < t.Min {
			t.Min = v
		}
		if v > t.Max {
			t.Max = v
		}
		sum += v
	}
	first, last := values[0], values[len(values)-1]
	t.Avg = sum / float64(len(values))
	t.Current = last
	t.Change = last - first
	if last > first {
		t.Trend = "increasing"
	} else {
		t.Trend = "decreasing"
	}
	return t
}

// ProcessHistory tracks a named process (optionally pinned to a pid) across
// every snapshot in the store, merging appearances in both the top-CPU and
// top-memory lists of the same snapshot into one record. The result keeps
// only the most recent PROCESS_HISTORY_LIMIT records across the whole scan.
func (e *Engine) ProcessHistory(name string, pid int) (*ProcessHistoryResult, error) {
	snaps := e.store.All()
	if len(snaps) == 0 {
		return nil, ErrNoHistory
	}

	var records []ProcessRecord
	for _, s := range snaps {
		found := make([]ProcessRecord, 0, 2)

		for _, proc := range s.TopCPU {
			if proc.Name != name || (pid != 0 && proc.PID != pid) {
				continue
			}
			cpu := proc.CPUPercent
			found = append(found, ProcessRecord{
				Timestamp:  s.Timestamp,
				PID:        proc.PID,
				CPUPercent: &cpu,
				Source:     "cpu_list",
			})
		}

		for _, proc := range s.TopMemory {
			if proc.Name != name || (pid != 0 && proc.PID != pid) {
				continue
			}
			rss := proc.RSSMB
			merged := false
			for i := range found {
				if found[i].PID == proc.PID {
					found[i].RSSMB = &rss
					found[i].Source = "both_lists"
					merged = true
					break
				}
			}
			if !merged {
				found = append(found, ProcessRecord{
					Timestamp: s.Timestamp,
					PID:       proc.PID,
					RSSMB:     &rss,
					Source:    "memory_list",
				})
			}
		}

		records = append(records, found...)
	}

	if len(records) > constants.PROCESS_HISTORY_LIMIT {
		records = records[len(records)-constants.PROCESS_HISTORY_LIMIT:]
	}

	return &ProcessHistoryResult{
		ProcessName: name,
		TargetPID:   pid,
		History:     records,
	}, nil
}
