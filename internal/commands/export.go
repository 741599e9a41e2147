package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysdoctor/internal/config"
	"sysdoctor/internal/encoding"
	"sysdoctor/internal/history"
	"sysdoctor/internal/ui"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the persisted history as a compact CBOR archive",
		Long: `Export the snapshot history to a CBOR archive file, a compact binary
alternative to the JSON history file for shipping elsewhere.

Examples:
  sysdoctor export                           # Write snapshots.cbor in the current directory
  sysdoctor export --output /tmp/host.cbor   # Write to a specific path`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				return
			}

			output, _ := cmd.Flags().GetString("output")

			snaps := history.NewPersister(cfg.SnapshotsPath()).Load(cfg.Capacity)
			if len(snaps) == 0 {
				ui.PrintStatus("warning", "No snapshot history to export")
				return
			}

			if err := encoding.WriteArchive(output, snaps); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Export failed: %v", err))
				return
			}

			ui.PrintStatus("success", fmt.Sprintf("Exported %d snapshots to %s", len(snaps), output))
		},
	}

	cmd.Flags().String("output", "snapshots.cbor", "archive file to write")
	return cmd
}
