// Package snapshot captures point-in-time host state for the sysdoctor daemon.
package snapshot

// MemoryInfo contains system-wide memory figures in gigabytes
type MemoryInfo struct {
	TotalGB     float64 `json:"total_gb"`
	AvailableGB float64 `json:"available_gb"`
	PercentUsed float64 `json:"percent_used"`
}

// CPUProcess is one entry of the top-CPU process list
type CPUProcess struct {
	PID        int     `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
}

// MemoryProcess is one entry of the top-memory process list
type MemoryProcess struct {
	PID   int     `json:"pid"`
	Name  string  `json:"name"`
	RSSMB float64 `json:"rss_mb"`
	VMSMB float64 `json:"vms_mb"`
}

// MountUsage describes disk headroom for one mount point or requested path
type MountUsage struct {
	Location    string  `json:"location"`
	Type        string  `json:"type"` // "mount" or "path"
	Device      string  `json:"device,omitempty"`
	FSType      string  `json:"fstype,omitempty"`
	TotalGB     float64 `json:"total_gb,omitempty"`
	FreeGB      float64 `json:"free_gb,omitempty"`
	PercentUsed float64 `json:"percent_used,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Snapshot is one point-in-time capture of host metrics.
// A snapshot is immutable once created. When capture fails, Error is set
// and the metric fields are left zero; such degraded snapshots are still
// appended to history so gaps stay visible.
type Snapshot struct {
	Timestamp  float64         `json:"timestamp"` // seconds since epoch
	Hostname   string          `json:"hostname"`
	CPUPercent float64         `json:"cpu_percent"`
	Memory     MemoryInfo      `json:"memory"`
	LoadAvg    [3]float64      `json:"load_avg"` // 1min, 5min, 15min
	TopCPU     []CPUProcess    `json:"top_cpu_processes"`
	TopMemory  []MemoryProcess `json:"top_mem_processes"`
	DiskUsage  []MountUsage    `json:"disk_usage"`
	Error      string          `json:"error,omitempty"`
}

// Degraded reports whether this snapshot was produced by a failed capture
func (s Snapshot) Degraded() bool {
	return s.Error != ""
}
