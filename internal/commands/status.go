package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysdoctor/internal/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/process"
	"sysdoctor/internal/snapshot"
	"sysdoctor/internal/ui"
	"sysdoctor/pkg/utils"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Display current host state and daemon status",
		Long: `Display a live snapshot of the host along with the daemon state:
  • System Information (hostname, capture time)
  • Current Metrics (CPU, memory, load average)
  • Top Processes (by CPU and by memory)
  • Disk Usage (fullest mounts first)
  • Daemon Status (running or not, history size on disk)

Examples:
  sysdoctor status          # Show all host information`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				return
			}

			spin := ui.NewSimpleSpinner("Capturing host snapshot...")
			spin.Start()
			snap := snapshot.Capture(cfg.TopProcesses, cfg.DiskMounts)
			spin.Stop()

			if snap.Degraded() {
				ui.PrintStatus("error", fmt.Sprintf("Snapshot capture failed: %s", snap.Error))
				return
			}

			ui.PrintSection("System Information")
			systemData := map[string]string{
				"Hostname":    snap.Hostname,
				"Captured At": utils.FormatTimestamp(snap.Timestamp),
			}
			fmt.Print(ui.CreateList(systemData))
			ui.PrintSectionEnd()

			ui.PrintSection("Current Metrics")
			metricsData := map[string]string{
				"CPU Usage":    utils.FormatPercentage(snap.CPUPercent),
				"Memory Usage": fmt.Sprintf("%s (%s available of %s)", utils.FormatPercentage(snap.Memory.PercentUsed), utils.FormatGB(snap.Memory.AvailableGB), utils.FormatGB(snap.Memory.TotalGB)),
				"Load Average": utils.FormatLoadAvg(snap.LoadAvg),
			}
			fmt.Print(ui.CreateList(metricsData))
			ui.PrintSectionEnd()

			ui.PrintSection("Top Processes")
			fmt.Print(ui.CreateProcessTable(snap.TopCPU, snap.TopMemory))
			ui.PrintSectionEnd()

			ui.PrintSection("Disk Usage")
			diskData := make(map[string]string, len(snap.DiskUsage))
			for _, mount := range snap.DiskUsage {
				if mount.Error != "" {
					diskData[mount.Location] = mount.Error
					continue
				}
				diskData[mount.Location] = fmt.Sprintf("%s used, %s free of %s", utils.FormatPercentage(mount.PercentUsed), utils.FormatGB(mount.FreeGB), utils.FormatGB(mount.TotalGB))
			}
			fmt.Print(ui.CreateList(diskData))
			ui.PrintSectionEnd()

			ui.PrintSection("Daemon Status")
			manager := process.NewManager(cfg.PIDPath())
			if manager.IsRunning() {
				ui.PrintStatus("success", "Snapshot daemon is running")
			} else {
				ui.PrintStatus("warning", "Snapshot daemon is not running")
			}
			persisted := history.NewPersister(cfg.SnapshotsPath()).Load(cfg.Capacity)
			ui.PrintStatus("info", fmt.Sprintf("%d snapshots persisted at %s", len(persisted), cfg.SnapshotsPath()))
			ui.PrintSectionEnd()
		},
	}
}
