package tools

import (
	"fmt"

	constants "sysdoctor/config"
	"sysdoctor/internal/analytics"
	"sysdoctor/internal/logger"
	"sysdoctor/internal/snapshot"
)

// Dispatcher executes tool calls by name. Live-capture tools hit the host
// directly; history tools go through the analytics engine. A dispatch never
// panics and never returns a Go error: failures come back as a result
// carrying an "error" key, the shape tool-calling clients expect.
type Dispatcher struct {
	engine *analytics.Engine

	// Capture collaborators as fields so tests can substitute fakes
	capture   func(topN, diskTopN int) snapshot.Snapshot
	topCPU    func(n int) []snapshot.CPUProcess
	topMemory func(n int) []snapshot.MemoryProcess
	diskUsage func(paths []string, topN int) []snapshot.MountUsage
}

// NewDispatcher creates a dispatcher answering history queries from the
// given engine and live queries from the host
func NewDispatcher(engine *analytics.Engine) *Dispatcher {
	return &Dispatcher{
		engine:    engine,
		capture:   snapshot.Capture,
		topCPU:    snapshot.TopCPU,
		topMemory: snapshot.TopMemory,
		diskUsage: snapshot.DiskUsage,
	}
}

// Execute runs the named tool with the given arguments and returns a
// JSON-serializable result
func (d *Dispatcher) Execute(name string, args map[string]interface{}) interface{} {
	switch name {
	case "get_current_snapshot":
		return d.capture(constants.DEFAULT_TOP_PROCESSES, constants.DEFAULT_DISK_MOUNTS)

	case "get_top_cpu_processes":
		n := intArg(args, "n", constants.DEFAULT_TOP_PROCESSES)
		procs := d.topCPU(n)
		return map[string]interface{}{"top_cpu_processes": procs}

	case "get_top_memory_processes":
		n := intArg(args, "n", constants.DEFAULT_TOP_PROCESSES)
		procs := d.topMemory(n)
		return map[string]interface{}{"top_mem_processes": procs}

	case "check_disk_usage":
		paths := stringSliceArg(args, "paths")
		topN := intArg(args, "top_n", constants.DEFAULT_DISK_MOUNTS)
		return map[string]interface{}{"usage": d.diskUsage(paths, topN)}

	case "get_snapshot_history":
		lastN := intArg(args, "last_n", constants.DEFAULT_HISTORY_COUNT)
		minutesAgo := intArg(args, "minutes_ago", 0)
		result, err := d.engine.History(lastN, minutesAgo)
		if err != nil {
			return errorResult(err)
		}
		return result

	case "analyze_trends":
		metric := analytics.Metric(stringArg(args, "metric", string(analytics.MetricBoth)))
		window := intArg(args, "window_minutes", constants.DEFAULT_TREND_WINDOW)
		result, err := d.engine.Trends(metric, window)
		if err != nil {
			return errorResult(err)
		}
		return result

	case "find_process_history":
		procName := stringArg(args, "process_name", "")
		if procName == "" {
			return errorResult(fmt.Errorf("process_name is required"))
		}
		pid := intArg(args, "pid", 0)
		result, err := d.engine.ProcessHistory(procName, pid)
		if err != nil {
			return errorResult(err)
		}
		return result

	default:
		logger.Warning("Unknown tool requested: %s", name)
		return errorResult(fmt.Errorf("unknown tool: %s", name))
	}
}

func errorResult(err error) map[string]interface{} {
	return map[string]interface{}{"error": err.Error()}
}

// intArg reads an integer argument, tolerating the float64 that
// encoding/json produces for every JSON number
func intArg(args map[string]interface{}, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}

func stringArg(args map[string]interface{}, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
