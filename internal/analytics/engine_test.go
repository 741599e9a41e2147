package analytics

import (
	"errors"
	"testing"
	"time"

	"sysdoctor/internal/history"
	"sysdoctor/internal/snapshot"
)

var testBase = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// newTestEngine pins the engine clock to testBase
func newTestEngine(store *history.Store) *Engine {
	e := NewEngine(store)
	e.now = func() time.Time { return testBase }
	return e
}

// metricSnap builds a healthy snapshot secondsAgo before testBase
func metricSnap(secondsAgo int, cpu, mem float64) snapshot.Snapshot {
	return snapshot.Snapshot{
		Timestamp:  epoch(testBase.Add(-time.Duration(secondsAgo) * time.Second)),
		Hostname:   "test-host",
		CPUPercent: cpu,
		Memory:     snapshot.MemoryInfo{PercentUsed: mem},
		LoadAvg:    [3]float64{0.5, 0.4, 0.3},
	}
}

func TestTrendsStats(t *testing.T) {
	store := history.NewStore(10)
	for i, cpu := range []float64{10, 20, 15, 30} {
		store.Append(metricSnap(240-i*60, cpu, 40))
	}

	result, err := newTestEngine(store).Trends(MetricCPU, 10)
	if err != nil {
		t.Fatalf("Trends() error: %v", err)
	}

	if result.SnapshotsAnalyzed != 4 {
		t.Errorf("SnapshotsAnalyzed = %d, want 4", result.SnapshotsAnalyzed)
	}
	cpu := result.Trends.CPU
	if cpu == nil {
		t.Fatal("Trends.CPU is nil")
	}
	if cpu.Min != 10 || cpu.Max != 30 {
		t.Errorf("min/max = %v/%v, want 10/30", cpu.Min, cpu.Max)
	}
	if cpu.Avg != 18.75 {
		t.Errorf("Avg = %v, want 18.75", cpu.Avg)
	}
	if cpu.Current != 30 || cpu.Change != 20 {
		t.Errorf("current/change = %v/%v, want 30/20", cpu.Current, cpu.Change)
	}
	if cpu.Trend != "increasing" {
		t.Errorf("Trend = %q, want increasing", cpu.Trend)
	}
	if result.Trends.Memory != nil {
		t.Error("Trends.Memory set for a cpu-only query")
	}
}

func TestTrendsFlatSeriesReportsDecreasing(t *testing.T) {
	store := history.NewStore(10)
	store.Append(metricSnap(120, 50, 50))
	store.Append(metricSnap(60, 50, 50))

	result, err := newTestEngine(store).Trends(MetricBoth, 10)
	if err != nil {
		t.Fatalf("Trends() error: %v", err)
	}
	if result.Trends.CPU.Trend != "decreasing" {
		t.Errorf("flat CPU trend = %q, want decreasing", result.Trends.CPU.Trend)
	}
	if result.Trends.Memory.Trend != "decreasing" {
		t.Errorf("flat memory trend = %q, want decreasing", result.Trends.Memory.Trend)
	}
}

func TestTrendsInsufficientHistory(t *testing.T) {
	store := history.NewStore(10)
	store.Append(metricSnap(60, 10, 10))

	_, err := newTestEngine(store).Trends(MetricBoth, 10)
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("Trends() error = %v, want ErrInsufficientHistory", err)
	}
}

func TestTrendsEmptyWindow(t *testing.T) {
	store := history.NewStore(10)
	// Both snapshots exist but fall outside the 10-minute window
	store.Append(metricSnap(3600, 10, 10))
	store.Append(metricSnap(3000, 20, 20))

	_, err := newTestEngine(store).Trends(MetricBoth, 10)
	var windowErr *InsufficientWindowError
	if !errors.As(err, &windowErr) {
		t.Fatalf("Trends() error = %v, want InsufficientWindowError", err)
	}
	if windowErr.WindowMinutes != 10 {
		t.Errorf("WindowMinutes = %d, want 10", windowErr.WindowMinutes)
	}
}

func TestTrendsSkipsDegradedSnapshots(t *testing.T) {
	store := history.NewStore(10)
	store.Append(metricSnap(180, 10, 10))
	store.Append(snapshot.Snapshot{Timestamp: epoch(testBase.Add(-2 * time.Minute)), Error: "probe failed"})
	store.Append(metricSnap(60, 30, 30))

	result, err := newTestEngine(store).Trends(MetricCPU, 10)
	if err != nil {
		t.Fatalf("Trends() error: %v", err)
	}
	if result.SnapshotsAnalyzed != 2 {
		t.Errorf("SnapshotsAnalyzed = %d, want 2 (degraded excluded)", result.SnapshotsAnalyzed)
	}
}

func TestTrendsRejectsUnknownMetric(t *testing.T) {
	store := history.NewStore(10)
	store.Append(metricSnap(120, 10, 10))
	store.Append(metricSnap(60, 20, 20))

	if _, err := newTestEngine(store).Trends(Metric("disk"), 10); err == nil {
		t.Error("Trends() accepted an unknown metric")
	}
}

func TestHistoryTailIncludesTopProcesses(t *testing.T) {
	store := history.NewStore(10)
	withProcs := metricSnap(120, 20, 40)
	withProcs.TopCPU = []snapshot.CPUProcess{{PID: 42, Name: "postgres", CPUPercent: 18}}
	withProcs.TopMemory = []snapshot.MemoryProcess{{PID: 7, Name: "chrome", RSSMB: 900}}
	store.Append(withProcs)
	store.Append(metricSnap(60, 25, 41)) // no process lists

	result, err := newTestEngine(store).History(10, 0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(result.Snapshots) != 2 {
		t.Fatalf("History() returned %d entries, want 2", len(result.Snapshots))
	}
	if result.Snapshots[0].TopCPUProcess != "postgres" || result.Snapshots[0].TopMemoryProcess != "chrome" {
		t.Errorf("top processes = %q/%q, want postgres/chrome",
			result.Snapshots[0].TopCPUProcess, result.Snapshots[0].TopMemoryProcess)
	}
	if result.Snapshots[1].TopCPUProcess != "unknown" {
		t.Errorf("empty process list rendered as %q, want unknown", result.Snapshots[1].TopCPUProcess)
	}
}

func TestHistoryTailCapsAtLastN(t *testing.T) {
	store := history.NewStore(20)
	for i := 0; i < 15; i++ {
		store.Append(metricSnap(900-i*60, float64(i), 40))
	}

	result, err := newTestEngine(store).History(5, 0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(result.Snapshots) != 5 {
		t.Fatalf("History(5, 0) returned %d entries, want 5", len(result.Snapshots))
	}
	if result.Snapshots[0].CPUPercent != 10 {
		t.Errorf("first entry CPU = %v, want 10 (oldest of the kept tail)", result.Snapshots[0].CPUPercent)
	}
}

func TestHistoryMinutesAgoToleranceWindow(t *testing.T) {
	store := history.NewStore(10)
	// Target is 10 minutes ago. 299s off is inside the window, 301s is not.
	store.Append(metricSnap(600+299, 11, 40))
	store.Append(metricSnap(600, 22, 40))
	store.Append(metricSnap(600-301, 33, 40))

	result, err := newTestEngine(store).History(10, 10)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(result.Snapshots) != 2 {
		t.Fatalf("History(10, 10) returned %d entries, want 2", len(result.Snapshots))
	}
	for _, entry := range result.Snapshots {
		if entry.CPUPercent == 33 {
			t.Error("snapshot outside the tolerance window was included")
		}
		if entry.TopCPUProcess != "" {
			t.Errorf("window mode entry carries top process %q, want empty", entry.TopCPUProcess)
		}
	}
}

func TestHistoryEmptyStore(t *testing.T) {
	_, err := newTestEngine(history.NewStore(5)).History(10, 0)
	if !errors.Is(err, ErrNoHistory) {
		t.Errorf("History() error = %v, want ErrNoHistory", err)
	}
}

func procSnap(secondsAgo int, pid int, name string, inCPU, inMem bool) snapshot.Snapshot {
	s := metricSnap(secondsAgo, 10, 10)
	if inCPU {
		s.TopCPU = []snapshot.CPUProcess{{PID: pid, Name: name, CPUPercent: 5}}
	}
	if inMem {
		s.TopMemory = []snapshot.MemoryProcess{{PID: pid, Name: name, RSSMB: 128}}
	}
	return s
}

func TestProcessHistoryMergesBothLists(t *testing.T) {
	store := history.NewStore(10)
	store.Append(procSnap(180, 42, "postgres", true, true))
	store.Append(procSnap(120, 42, "postgres", true, false))
	store.Append(procSnap(60, 42, "postgres", false, true))

	result, err := newTestEngine(store).ProcessHistory("postgres", 0)
	if err != nil {
		t.Fatalf("ProcessHistory() error: %v", err)
	}
	if len(result.History) != 3 {
		t.Fatalf("ProcessHistory() returned %d records, want 3", len(result.History))
	}

	merged := result.History[0]
	if merged.Source != "both_lists" {
		t.Errorf("merged record source = %q, want both_lists", merged.Source)
	}
	if merged.CPUPercent == nil || merged.RSSMB == nil {
		t.Error("merged record is missing cpu or rss values")
	}
	if result.History[1].Source != "cpu_list" || result.History[2].Source != "memory_list" {
		t.Errorf("record sources = %q, %q; want cpu_list, memory_list",
			result.History[1].Source, result.History[2].Source)
	}
}

func TestProcessHistoryFiltersByPID(t *testing.T) {
	store := history.NewStore(10)
	s := metricSnap(60, 10, 10)
	s.TopCPU = []snapshot.CPUProcess{
		{PID: 1, Name: "worker", CPUPercent: 5},
		{PID: 2, Name: "worker", CPUPercent: 9},
	}
	store.Append(s)

	result, err := newTestEngine(store).ProcessHistory("worker", 2)
	if err != nil {
		t.Fatalf("ProcessHistory() error: %v", err)
	}
	if len(result.History) != 1 || result.History[0].PID != 2 {
		t.Errorf("pid-filtered history = %+v, want single record for PID 2", result.History)
	}

	// pid 0 matches any instance
	all, err := newTestEngine(store).ProcessHistory("worker", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.History) != 2 {
		t.Errorf("unfiltered history has %d records, want 2", len(all.History))
	}
}

func TestProcessHistoryKeepsMostRecentRecords(t *testing.T) {
	store := history.NewStore(30)
	for i := 0; i < 25; i++ {
		store.Append(procSnap(1500-i*60, 42, "postgres", true, false))
	}

	result, err := newTestEngine(store).ProcessHistory("postgres", 0)
	if err != nil {
		t.Fatalf("ProcessHistory() error: %v", err)
	}
	if len(result.History) != 20 {
		t.Fatalf("ProcessHistory() kept %d records, want 20", len(result.History))
	}
	// The oldest five occurrences must be the ones dropped
	oldestKept := result.History[0].Timestamp
	wantOldest := epoch(testBase.Add(-time.Duration(1500-5*60) * time.Second))
	if oldestKept != wantOldest {
		t.Errorf("oldest kept timestamp = %v, want %v", oldestKept, wantOldest)
	}
}

func TestProcessHistoryEmptyStore(t *testing.T) {
	_, err := newTestEngine(history.NewStore(5)).ProcessHistory("postgres", 0)
	if !errors.Is(err, ErrNoHistory) {
		t.Errorf("ProcessHistory() error = %v, want ErrNoHistory", err)
	}
}
