package commands

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	constants "sysdoctor/config"
	"sysdoctor/internal/collector"
	"sysdoctor/internal/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/logger"
	"sysdoctor/internal/process"
	"sysdoctor/internal/service"
	"sysdoctor/internal/snapshot"
	"sysdoctor/internal/telemetry"
)

// NewDaemonCmd creates the hidden daemon command. This is the entrypoint the
// detached child runs: it records its PID, restores persisted history, and
// drives the snapshot producer until it is told to stop.
func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "daemon",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			interval, _ := cmd.Flags().GetInt("interval")
			runDaemon(interval)
		},
	}

	cmd.Flags().Int("interval", constants.DEFAULT_SAMPLE_INTERVAL, "seconds between snapshots")
	return cmd
}

func runDaemon(interval int) {
	// Log all exits
	defer func() {
		logger.Info("=== DAEMON EXITING - PID: %d ===", os.Getpid())
	}()

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			logger.Error("=== PANIC DETECTED ===")
			logger.Error("Panic value: %v", r)
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			logger.Error("Stack trace:\n%s", string(buf[:n]))
			service.NotifyStopping()
			os.Exit(1)
		}
	}()

	logger.Info("========================================")
	logger.Info("=== DAEMON STARTING - PID: %d ===", os.Getpid())
	logger.Info("========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}
	if interval <= 0 {
		interval = cfg.SampleInterval
	}

	manager := process.NewManager(cfg.PIDPath())
	if err := manager.WritePID(); err != nil {
		logger.Error("Error writing PID file: %v", err)
		os.Exit(1)
	}
	defer manager.RemovePID()

	store := history.NewStore(cfg.Capacity)
	persister := history.NewPersister(cfg.SnapshotsPath())
	loaded := persister.LoadInto(store)

	logger.Info("Daemon initialized:")
	logger.Info("  Sample interval: %ds", interval)
	logger.Info("  History capacity: %d", store.Capacity())
	logger.Info("  Restored snapshots: %d", loaded)
	logger.Info("  History file: %s", persister.Path())

	var metrics *telemetry.Metrics
	if cfg.MetricsListen != "" {
		metrics = telemetry.New()
		metrics.Serve(cfg.MetricsListen)
	}

	capture := func() snapshot.Snapshot {
		return snapshot.Capture(cfg.TopProcesses, cfg.DiskMounts)
	}
	coll := collector.New(store, persister, capture,
		time.Duration(interval)*time.Second, cfg.SaveEvery, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Notify systemd that we're ready (for Type=notify services)
	service.NotifyReady()
	service.NotifyStatus("Collecting snapshots")

	coll.Run(ctx)

	service.NotifyStopping()
}
