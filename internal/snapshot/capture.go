package snapshot

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

const bytesPerMB = 1024 * 1024
const bytesPerGB = 1024 * 1024 * 1024

// Variable (not function) to allow override in tests.
var cpuPercentFn = cpu.Percent

// Capture returns a point-in-time snapshot of host state.
// It never returns an error: if any system-wide probe fails the snapshot
// comes back degraded, carrying only timestamp, hostname and the error text.
func Capture(topN, diskTopN int) Snapshot {
	now := float64(time.Now().UnixNano()) / 1e9
	hostname, _ := os.Hostname()

	snap := Snapshot{
		Timestamp: now,
		Hostname:  hostname,
	}

	cpuPercent, err := cpuPercentFn(100*time.Millisecond, false)
	if err != nil {
		return degraded(snap, fmt.Errorf("cpu percent: %w", err))
	}
	if len(cpuPercent) == 0 {
		return degraded(snap, fmt.Errorf("cpu percent: no samples returned"))
	}
	snap.CPUPercent = cpuPercent[0]

	vm, err := mem.VirtualMemory()
	if err != nil {
		return degraded(snap, fmt.Errorf("virtual memory: %w", err))
	}
	snap.Memory = MemoryInfo{
		TotalGB:     float64(vm.Total) / bytesPerGB,
		AvailableGB: float64(vm.Available) / bytesPerGB,
		PercentUsed: vm.UsedPercent,
	}

	if avg, err := load.Avg(); err == nil {
		snap.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	snap.TopCPU = TopCPU(topN)
	snap.TopMemory = TopMemory(topN)
	snap.DiskUsage = DiskUsage(nil, diskTopN)

	return snap
}

func degraded(snap Snapshot, err error) Snapshot {
	snap.Error = err.Error()
	return snap
}

// TopCPU returns the top n processes by CPU usage, sorted descending.
// Processes that disappear or deny access mid-scan are skipped.
func TopCPU(n int) []CPUProcess {
	procs, err := process.Processes()
	if err != nil {
		return []CPUProcess{}
	}

	results := make([]CPUProcess, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		pct, err := p.CPUPercent()
		if err != nil {
			continue
		}
		results = append(results, CPUProcess{
			PID:        int(p.Pid),
			Name:       name,
			CPUPercent: pct,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CPUPercent > results[j].CPUPercent
	})

	if len(results) > n {
		results = results[:n]
	}
	return results
}

// TopMemory returns the top n processes by resident set size, sorted descending
func TopMemory(n int) []MemoryProcess {
	procs, err := process.Processes()
	if err != nil {
		return []MemoryProcess{}
	}

	results := make([]MemoryProcess, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		info, err := p.MemoryInfo()
		if err != nil || info == nil {
			continue
		}
		results = append(results, MemoryProcess{
			PID:   int(p.Pid),
			Name:  name,
			RSSMB: float64(info.RSS) / bytesPerMB,
			VMSMB: float64(info.VMS) / bytesPerMB,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RSSMB > results[j].RSSMB
	})

	if len(results) > n {
		results = results[:n]
	}
	return results
}

// DiskUsage returns per-mount usage records, sorted by percent used and
// capped at topN. When paths are given, only those paths are checked (no
// sorting or capping) and inaccessible paths produce an error record
// instead of being dropped.
func DiskUsage(paths []string, topN int) []MountUsage {
	if len(paths) > 0 {
		usage := make([]MountUsage, 0, len(paths))
		for _, path := range paths {
			u, err := disk.Usage(path)
			if err != nil {
				usage = append(usage, MountUsage{
					Location: path,
					Type:     "path",
					Error:    "inaccessible",
				})
				continue
			}
			usage = append(usage, MountUsage{
				Location:    path,
				Type:        "path",
				TotalGB:     float64(u.Total) / bytesPerGB,
				FreeGB:      float64(u.Free) / bytesPerGB,
				PercentUsed: u.UsedPercent,
			})
		}
		return usage
	}

	partitions, err := disk.Partitions(false)
	if err != nil {
		return []MountUsage{}
	}

	usage := make([]MountUsage, 0, len(partitions))
	for _, part := range partitions {
		u, err := disk.Usage(part.Mountpoint)
		if err != nil {
			continue
		}
		usage = append(usage, MountUsage{
			Location:    part.Mountpoint,
			Type:        "mount",
			Device:      part.Device,
			FSType:      part.Fstype,
			TotalGB:     float64(u.Total) / bytesPerGB,
			FreeGB:      float64(u.Free) / bytesPerGB,
			PercentUsed: u.UsedPercent,
		})
	}

	sort.Slice(usage, func(i, j int) bool {
		return usage[i].PercentUsed > usage[j].PercentUsed
	})

	if len(usage) > topN {
		usage = usage[:topN]
	}
	return usage
}
