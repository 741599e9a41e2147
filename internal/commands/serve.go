package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sysdoctor/internal/analytics"
	"sysdoctor/internal/collector"
	"sysdoctor/internal/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/logger"
	"sysdoctor/internal/snapshot"
	"sysdoctor/internal/telemetry"
	"sysdoctor/internal/tools"
)

// toolRequest is one line of input on the serve transport
type toolRequest struct {
	ID        interface{}            `json:"id,omitempty"`
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// toolResponse is one line of output on the serve transport
type toolResponse struct {
	ID     interface{} `json:"id,omitempty"`
	Result interface{} `json:"result"`
}

// NewServeCmd creates the serve command: a line-delimited JSON tool server
// on stdin/stdout, with an in-process snapshot producer feeding the history
// the tools query
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshot tools over stdio for tool-calling clients",
		Long: `Run a tool server on stdin/stdout. Each input line is a JSON request:

  {"id": 1, "tool": "analyze_trends", "arguments": {"metric": "cpu"}}

and each output line is the matching JSON response. The special tool
"list_tools" returns the tool catalog. A snapshot producer runs inside
the server process, so history tools work without a separate daemon.

The server exits on stdin EOF or SIGTERM, flushing history to disk.`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}
}

func runServe() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}

	store := history.NewStore(cfg.Capacity)
	persister := history.NewPersister(cfg.SnapshotsPath())
	loaded := persister.LoadInto(store)
	logger.Info("Tool server starting (restored %d snapshots)", loaded)

	var metrics *telemetry.Metrics
	if cfg.MetricsListen != "" {
		metrics = telemetry.New()
		metrics.Serve(cfg.MetricsListen)
	}

	capture := func() snapshot.Snapshot {
		return snapshot.Capture(cfg.TopProcesses, cfg.DiskMounts)
	}
	coll := collector.New(store, persister, capture,
		time.Duration(cfg.SampleInterval)*time.Second, cfg.SaveEvery, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		coll.Run(ctx)
	}()

	dispatcher := tools.NewDispatcher(analytics.NewEngine(store))
	encoder := json.NewEncoder(os.Stdout)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req toolRequest
		if err := json.Unmarshal(line, &req); err != nil {
			encoder.Encode(toolResponse{Result: map[string]interface{}{
				"error": "invalid request: " + err.Error(),
			}})
			continue
		}

		var result interface{}
		if req.Tool == "list_tools" {
			result = map[string]interface{}{"tools": tools.Definitions()}
		} else {
			result = dispatcher.Execute(req.Tool, req.Arguments)
		}
		encoder.Encode(toolResponse{ID: req.ID, Result: result})
	}
	if err := scanner.Err(); err != nil {
		logger.Warning("Tool server input error: %v", err)
	}

	// Stop the producer and wait for its shutdown flush
	stop()
	<-collectorDone
	logger.Info("Tool server stopped")
}
