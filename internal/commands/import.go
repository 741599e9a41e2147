package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysdoctor/internal/config"
	"sysdoctor/internal/encoding"
	"sysdoctor/internal/history"
	"sysdoctor/internal/ui"
)

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore snapshot history from a CBOR archive",
		Long: `Replace the persisted snapshot history with the contents of a CBOR
archive previously written by 'sysdoctor export'. Archives larger than
the history capacity keep only the most recent snapshots.

Stop the daemon before importing, or its next save will overwrite the
imported history.

Examples:
  sysdoctor import --input snapshots.cbor
  sysdoctor import --input /tmp/host.cbor`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				return
			}

			input, _ := cmd.Flags().GetString("input")

			snaps, err := encoding.ReadArchive(input)
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Import failed: %v", err))
				return
			}
			if len(snaps) > cfg.Capacity {
				snaps = snaps[len(snaps)-cfg.Capacity:]
			}

			if err := history.NewPersister(cfg.SnapshotsPath()).SaveSnapshots(snaps); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Import failed: %v", err))
				return
			}

			ui.PrintStatus("success", fmt.Sprintf("Imported %d snapshots from %s", len(snaps), input))
		},
	}

	cmd.Flags().String("input", "snapshots.cbor", "archive file to read")
	return cmd
}
