// Package telemetry exposes daemon self-metrics in Prometheus format.
// The listener is optional and disabled unless an address is configured.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sysdoctor/internal/logger"
	"sysdoctor/internal/snapshot"
)

// Metrics holds the gauges and counters updated by the snapshot producer
type Metrics struct {
	registry *prometheus.Registry

	cpuPercent    prometheus.Gauge
	memoryPercent prometheus.Gauge
	load1         prometheus.Gauge
	snapshots     prometheus.Counter
	captureErrors prometheus.Counter
	saveErrors    prometheus.Counter
}

// New creates a metrics set on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cpuPercent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sysdoctor_cpu_percent",
			Help: "CPU usage percent from the most recent snapshot.",
		}),
		memoryPercent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sysdoctor_memory_percent",
			Help: "Memory usage percent from the most recent snapshot.",
		}),
		load1: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sysdoctor_load1",
			Help: "1-minute load average from the most recent snapshot.",
		}),
		snapshots: factory.NewCounter(prometheus.CounterOpts{
			Name: "sysdoctor_snapshots_total",
			Help: "Snapshots appended to history since daemon start.",
		}),
		captureErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "sysdoctor_capture_errors_total",
			Help: "Captures that produced a degraded snapshot.",
		}),
		saveErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "sysdoctor_save_errors_total",
			Help: "Failed history persistence attempts.",
		}),
	}
}

// Observe records one appended snapshot
func (m *Metrics) Observe(snap snapshot.Snapshot) {
	m.snapshots.Inc()
	if snap.Degraded() {
		m.captureErrors.Inc()
		return
	}
	m.cpuPercent.Set(snap.CPUPercent)
	m.memoryPercent.Set(snap.Memory.PercentUsed)
	m.load1.Set(snap.LoadAvg[0])
}

// ObserveSaveError records one failed persistence attempt
func (m *Metrics) ObserveSaveError() {
	m.saveErrors.Inc()
}

// Handler returns an HTTP handler serving the metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts the metrics listener in the background. Listener failures
// are logged, not fatal: self-metrics are a convenience, not a dependency.
func (m *Metrics) Serve(addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving self-metrics on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warning("Self-metrics listener stopped: %v", err)
		}
	}()
}
