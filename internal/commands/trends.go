package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	constants "sysdoctor/config"
	"sysdoctor/internal/analytics"
	"sysdoctor/internal/config"
	"sysdoctor/internal/history"
	"sysdoctor/internal/ui"
	"sysdoctor/pkg/utils"
)

// NewTrendsCmd creates the trends command
func NewTrendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Analyze CPU/memory trends from the persisted history",
		Long: `Summarize how CPU and memory usage moved over a recent time window,
based on the snapshots the daemon has persisted.

Examples:
  sysdoctor trends                        # Both metrics over the last 10 minutes
  sysdoctor trends --metric cpu           # CPU only
  sysdoctor trends --window 60            # The last hour`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				return
			}

			metric, _ := cmd.Flags().GetString("metric")
			window, _ := cmd.Flags().GetInt("window")

			store := history.NewStore(cfg.Capacity)
			history.NewPersister(cfg.SnapshotsPath()).LoadInto(store)

			engine := analytics.NewEngine(store)
			result, err := engine.Trends(analytics.Metric(metric), window)
			if err != nil {
				ui.PrintStatus("error", err.Error())
				return
			}

			ui.PrintSection(fmt.Sprintf("Trends (last %d minutes, %d snapshots)",
				result.TimeWindowMinutes, result.SnapshotsAnalyzed))
			if result.Trends.CPU != nil {
				fmt.Print(ui.CreateList(trendData("CPU", result.Trends.CPU)))
			}
			if result.Trends.Memory != nil {
				fmt.Print(ui.CreateList(trendData("Memory", result.Trends.Memory)))
			}
			ui.PrintSectionEnd()
		},
	}

	cmd.Flags().String("metric", string(analytics.MetricBoth), "metric to analyze: cpu, memory or both")
	cmd.Flags().Int("window", constants.DEFAULT_TREND_WINDOW, "time window in minutes")
	return cmd
}

func trendData(label string, t *analytics.MetricTrend) map[string]string {
	return map[string]string{
		label + " Range":   fmt.Sprintf("%s to %s (avg %s)", utils.FormatPercentage(t.Min), utils.FormatPercentage(t.Max), utils.FormatPercentage(t.Avg)),
		label + " Current": utils.FormatPercentage(t.Current),
		label + " Change":  fmt.Sprintf("%+.1f%% (%s)", t.Change, t.Trend),
	}
}
