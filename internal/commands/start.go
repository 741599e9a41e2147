package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysdoctor/internal/config"
	"sysdoctor/internal/process"
	"sysdoctor/internal/ui"
)

// NewStartCmd creates the start command
func NewStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the background snapshot daemon",
		Long: `Start the snapshot daemon in the background.
The daemon continuously captures host snapshots into a bounded history
buffer and persists them across restarts.

Starting an already-running daemon is a no-op.

Examples:
  sysdoctor start                 # Start with the configured interval
  sysdoctor start --interval 30   # Sample every 30 seconds`,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Starting Snapshot Daemon")

			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				ui.PrintSectionEnd()
				return
			}

			interval, _ := cmd.Flags().GetInt("interval")
			if interval <= 0 {
				interval = cfg.SampleInterval
			}

			manager := process.NewManager(cfg.PIDPath())
			if manager.IsRunning() {
				ui.PrintStatus("warning", "Snapshot daemon is already running")
				ui.PrintSectionEnd()
				return
			}

			if err := manager.Start(interval); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to start: %v", err))
				ui.PrintSectionEnd()
				return
			}

			ui.PrintStatus("success", fmt.Sprintf("Snapshot daemon started (interval %ds)", interval))
			ui.PrintSectionEnd()
		},
	}

	cmd.Flags().Int("interval", 0, "seconds between snapshots (0 = configured default)")
	return cmd
}
