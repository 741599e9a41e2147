package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysdoctor/internal/service"
	"sysdoctor/internal/ui"
)

// NewServiceCmd creates the service command with subcommands
func NewServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage sysdoctor as a system service",
		Long: `Manage sysdoctor as a system service (systemd on Linux, launchd on macOS).

The service command allows you to install, remove, start, stop, and check
the status of the snapshot daemon as a background system service.

Examples:
  sysdoctor service install   # Install and enable the service
  sysdoctor service start     # Start the service
  sysdoctor service stop      # Stop the service
  sysdoctor service status    # Check service status
  sysdoctor service remove    # Remove the service`,
	}

	cmd.AddCommand(newServiceInstallCmd())
	cmd.AddCommand(newServiceRemoveCmd())
	cmd.AddCommand(newServiceStartCmd())
	cmd.AddCommand(newServiceStopCmd())
	cmd.AddCommand(newServiceStatusCmd())

	return cmd
}

func newServiceInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install sysdoctor as a system service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintSection("Installing Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Install()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to install: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintStatus("info", "Run 'sysdoctor service start' to start collecting")
			ui.PrintSectionEnd()
		},
	}
}

func newServiceRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the sysdoctor system service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintSection("Removing Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			// Stop first if running
			svc.Stop()

			status, err := svc.Remove()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to remove: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintSectionEnd()
		},
	}
}

func newServiceStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the sysdoctor service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintSection("Starting Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Start()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to start: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintSectionEnd()
		},
	}
}

func newServiceStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the sysdoctor service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintSection("Stopping Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Stop()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to stop: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintSectionEnd()
		},
	}
}

func newServiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check sysdoctor service status",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintSection("Service Status")

			svc, err := service.New()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Status()
			if err != nil {
				ui.PrintStatus("warning", fmt.Sprintf("%s: %v", status, err))
				ui.PrintSectionEnd()
				return
			}

			ui.PrintStatus("info", status)
			ui.PrintSectionEnd()
		},
	}
}
