// Package tools exposes snapshot capture and history analytics as a named
// tool registry for tool-calling clients.
package tools

// Schema describes a tool's parameters as a JSON Schema fragment
type Schema map[string]interface{}

// Definition describes one callable tool
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Definitions returns the full tool catalog in registration order
func Definitions() []Definition {
	return []Definition{
		{
			Name:        "get_current_snapshot",
			Description: "Get current system state (CPU, memory, disk, top processes)",
			Parameters: Schema{
				"type":       "object",
				"properties": Schema{},
				"required":   []string{},
			},
		},
		{
			Name:        "get_top_cpu_processes",
			Description: "Get top N processes by CPU usage",
			Parameters: Schema{
				"type": "object",
				"properties": Schema{
					"n": Schema{"type": "integer", "description": "Number of processes to return", "default": 10},
				},
				"required": []string{},
			},
		},
		{
			Name:        "get_top_memory_processes",
			Description: "Get top N processes by memory usage",
			Parameters: Schema{
				"type": "object",
				"properties": Schema{
					"n": Schema{"type": "integer", "description": "Number of processes to return", "default": 10},
				},
				"required": []string{},
			},
		},
		{
			Name:        "check_disk_usage",
			Description: "Check disk usage for all mounts or specific paths",
			Parameters: Schema{
				"type": "object",
				"properties": Schema{
					"paths": Schema{"type": "array", "items": Schema{"type": "string"}, "description": "Specific paths to check"},
					"top_n": Schema{"type": "integer", "description": "Number of mounts to return", "default": 5},
				},
				"required": []string{},
			},
		},
		{
			Name:        "get_snapshot_history",
			Description: "Get historical snapshots from the ring buffer",
			Parameters: Schema{
				"type": "object",
				"properties": Schema{
					"last_n":      Schema{"type": "integer", "description": "Number of recent snapshots to return", "default": 10},
					"minutes_ago": Schema{"type": "integer", "description": "Get snapshots from N minutes ago (approximate)"},
				},
				"required": []string{},
			},
		},
		{
			Name:        "analyze_trends",
			Description: "Analyze CPU/memory trends over time from snapshot history",
			Parameters: Schema{
				"type": "object",
				"properties": Schema{
					"metric":         Schema{"type": "string", "enum": []string{"cpu", "memory", "both"}, "description": "Which metric to analyze", "default": "both"},
					"window_minutes": Schema{"type": "integer", "description": "Time window to analyze in minutes", "default": 10},
				},
				"required": []string{},
			},
		},
		{
			Name:        "find_process_history",
			Description: "Track a specific process across snapshots",
			Parameters: Schema{
				"type": "object",
				"properties": Schema{
					"process_name": Schema{"type": "string", "description": "Name of process to track"},
					"pid":          Schema{"type": "integer", "description": "PID of process to track (optional)"},
				},
				"required": []string{"process_name"},
			},
		},
	}
}
