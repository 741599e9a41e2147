// Package collector runs the background snapshot producer.
package collector

import (
	"context"
	"time"

	constants "sysdoctor/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/logger"
	"sysdoctor/internal/snapshot"
	"sysdoctor/internal/telemetry"
)

// CaptureFunc produces one snapshot. It must not fail: capture errors are
// reported through the snapshot's error field.
type CaptureFunc func() snapshot.Snapshot

// Collector appends snapshots to the history store on a fixed cadence and
// persists the store every SaveEvery appends. It is the single writer to
// the store.
type Collector struct {
	store     *history.Store
	persister *history.Persister
	capture   CaptureFunc
	interval  time.Duration
	saveEvery int
	metrics   *telemetry.Metrics

	appendCount int
}

// New creates a collector. metrics may be nil when self-metrics are disabled.
// Non-positive intervals fall back to the default cadence; the ticker in Run
// cannot accept them.
func New(store *history.Store, persister *history.Persister, capture CaptureFunc,
	interval time.Duration, saveEvery int, metrics *telemetry.Metrics) *Collector {
	if saveEvery < 1 {
		saveEvery = 1
	}
	if interval <= 0 {
		interval = constants.DEFAULT_SAMPLE_INTERVAL * time.Second
	}
	return &Collector{
		store:     store,
		persister: persister,
		capture:   capture,
		interval:  interval,
		saveEvery: saveEvery,
		metrics:   metrics,
	}
}

// Run executes the producer loop until ctx is cancelled, then flushes the
// history to disk. The first snapshot is taken immediately; cadence is
// best-effort and drift under slow captures is not corrected.
func (c *Collector) Run(ctx context.Context) {
	logger.Info("Snapshot collector started with interval %s", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.tick()
	for {
		select {
		case <-ticker.C:
			c.tick()
		case <-ctx.Done():
			c.flush()
			logger.Info("Snapshot collector stopped (%d snapshots this run)", c.appendCount)
			return
		}
	}
}

// tick captures one snapshot and appends it. A failed capture still appends
// a degraded snapshot; no failure inside a tick ever stops the loop.
func (c *Collector) tick() {
	snap := c.capture()
	if snap.Degraded() {
		logger.Error("Error collecting snapshot: %s", snap.Error)
	}

	c.store.Append(snap)
	c.appendCount++

	if c.metrics != nil {
		c.metrics.Observe(snap)
	}

	if c.appendCount%c.saveEvery == 0 {
		c.save()
		logger.Debug("Saved snapshots to disk (total collected: %d)", c.appendCount)
	}
}

// flush persists the current history; the orderly-shutdown path
func (c *Collector) flush() {
	c.save()
}

// save persists best-effort: failures are logged and swallowed so the
// producer loop never stalls on disk problems
func (c *Collector) save() {
	if err := c.persister.Save(c.store); err != nil {
		logger.Error("Error saving snapshots: %v", err)
		if c.metrics != nil {
			c.metrics.ObserveSaveError()
		}
	}
}
