package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysdoctor/internal/commands"
	"sysdoctor/internal/ui"
)

// VERSION is set during build via ldflags
var VERSION = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:                "sysdoctor",
		Short:              "Host metrics snapshot daemon and analyzer",
		DisableSuggestions: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Lookup("version").Changed {
				fmt.Printf("v%s\n", VERSION)
				return nil
			}

			ui.PrintHeader()

			ui.PrintSection("Core Features")
			featuresData := map[string]string{
				"Snapshot Daemon":  "Periodic CPU, memory, disk and process capture",
				"Bounded History":  "Ring buffer persisted across restarts",
				"Trend Analysis":   "Min/max/avg/change over a time window",
				"Process Tracking": "Follow one process across snapshots",
				"Tool Server":      "Stdio tools for tool-calling clients",
			}
			fmt.Print(ui.CreateList(featuresData))
			ui.PrintSectionEnd()

			ui.PrintSection("Quick Start")
			quickStartData := map[string]string{
				"sysdoctor start":     "Start the snapshot daemon",
				"sysdoctor status":    "Show live host state",
				"sysdoctor snapshots": "Show recent history",
				"sysdoctor trends":    "Analyze recent trends",
				"sysdoctor serve":     "Serve tools over stdio",
			}
			fmt.Print(ui.CreateList(quickStartData))
			ui.PrintSectionEnd()

			return nil
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "show version")

	rootCmd.AddCommand(commands.NewStartCmd())
	rootCmd.AddCommand(commands.NewStopCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewSnapshotsCmd())
	rootCmd.AddCommand(commands.NewTrendsCmd())
	rootCmd.AddCommand(commands.NewDaemonCmd())
	rootCmd.AddCommand(commands.NewServeCmd())
	rootCmd.AddCommand(commands.NewExportCmd())
	rootCmd.AddCommand(commands.NewImportCmd())
	rootCmd.AddCommand(commands.NewServiceCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
