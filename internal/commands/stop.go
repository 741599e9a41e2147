package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysdoctor/internal/config"
	"sysdoctor/internal/process"
	"sysdoctor/internal/ui"
)

// NewStopCmd creates the stop command
func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background snapshot daemon",
		Long: `Stop the snapshot daemon if it is running.

Stopping an already-stopped daemon is a no-op: the command succeeds in
every case where the daemon ends up not running. The daemon flushes its
history to disk before exiting.`,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Stopping Snapshot Daemon")

			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				ui.PrintSectionEnd()
				return
			}

			manager := process.NewManager(cfg.PIDPath())
			if !manager.IsRunning() {
				ui.PrintStatus("warning", "Snapshot daemon is not running")
				ui.PrintSectionEnd()
				return
			}

			if err := manager.Stop(); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to stop: %v", err))
				ui.PrintSectionEnd()
				return
			}

			ui.PrintStatus("success", "Snapshot daemon stopped")
			ui.PrintSectionEnd()
		},
	}
}
