package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	constants "sysdoctor/config"
	"sysdoctor/internal/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/ui"
)

// NewSnapshotsCmd creates the snapshots command
func NewSnapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Show recent snapshots from the persisted history",
		Long: `Show the most recent snapshots from the history file on disk.

The history is written by the daemon; this command reads whatever the
daemon last persisted, so it works whether or not the daemon is running.

Examples:
  sysdoctor snapshots              # Show the last 10 snapshots
  sysdoctor snapshots --count 25   # Show the last 25 snapshots`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				return
			}

			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				count = constants.DEFAULT_HISTORY_COUNT
			}

			snaps := history.NewPersister(cfg.SnapshotsPath()).Load(cfg.Capacity)
			if len(snaps) > count {
				snaps = snaps[len(snaps)-count:]
			}

			ui.PrintSection(fmt.Sprintf("Snapshot History (last %d)", len(snaps)))
			fmt.Print(ui.CreateSnapshotList(snaps))
			ui.PrintSectionEnd()
		},
	}

	cmd.Flags().Int("count", constants.DEFAULT_HISTORY_COUNT, "number of recent snapshots to show")
	return cmd
}
