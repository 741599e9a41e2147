// Package ui renders styled terminal output for the sysdoctor CLI.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"sysdoctor/internal/snapshot"
	"sysdoctor/pkg/utils"
)

// PrintHeader prints the application header
func PrintHeader() {
	banner := `███████╗██╗   ██╗███████╗██████╗  ██████╗  ██████╗████████╗ ██████╗ ██████╗
██╔════╝╚██╗ ██╔╝██╔════╝██╔══██╗██╔═══██╗██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗
███████╗ ╚████╔╝ ███████╗██║  ██║██║   ██║██║        ██║   ██║   ██║██████╔╝
╚════██║  ╚██╔╝  ╚════██║██║  ██║██║   ██║██║        ██║   ██║   ██║██╔══██╗
███████║   ██║   ███████║██████╔╝╚██████╔╝╚██████╗   ██║   ╚██████╔╝██║  ██║
╚══════╝   ╚═╝   ╚══════╝╚═════╝  ╚═════╝  ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝`
	fmt.Println(PrimaryStyle.Render(banner))
	fmt.Println(TitleStyle.Render("                         Host Metrics Doctor"))
}

// PrintSection prints a section header
func PrintSection(title string) {
	titleWidth := len(title) + 4 // "┌─ " + title + " ─"
	dashCount := DefaultWidth - titleWidth
	if dashCount < 0 {
		dashCount = 0
	}
	fmt.Println(BorderStyle.Render(BoxTopLeft+BoxHorizontal+" ") +
		TitleStyle.Render(title) +
		BorderStyle.Render(" "+BoxHorizontal+strings.Repeat(BoxHorizontal, dashCount)+BoxTopRight))
}

// PrintSectionEnd prints a section footer
func PrintSectionEnd() {
	fmt.Println(BorderStyle.Render(BoxBottomLeft + strings.Repeat(BoxHorizontal, DefaultWidth) + BoxBottomRight))
}

// RenderStatus returns a styled status line
func RenderStatus(status, message string) string {
	var icon string
	var style = InfoStyle

	switch status {
	case "success":
		icon, style = IconSuccess, SuccessStyle
	case "warning":
		icon, style = IconWarning, WarningStyle
	case "error":
		icon, style = IconError, ErrorStyle
	default:
		icon = IconInfo
	}

	return "  " + style.Render(icon) + " " + WhiteStyle.Render(message)
}

// PrintStatus prints a status message
func PrintStatus(status, message string) {
	fmt.Println(RenderStatus(status, message))
}

// CreateList renders a bulleted key-value list, sorted by key
func CreateList(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result strings.Builder
	for _, key := range keys {
		result.WriteString("  ")
		result.WriteString(PrimaryStyle.Render(IconBullet))
		result.WriteString(" ")
		result.WriteString(WhiteStyle.Render(key))
		result.WriteString(" ")
		result.WriteString(MutedStyle.Render(":"))
		result.WriteString(" ")
		result.WriteString(GrayStyle.Render(data[key]))
		result.WriteString("\n")
	}
	return result.String()
}

// CreateSnapshotList renders a compact one-line-per-snapshot history view
func CreateSnapshotList(snaps []snapshot.Snapshot) string {
	var result strings.Builder

	if len(snaps) == 0 {
		result.WriteString("  No snapshots recorded yet\n")
		return result.String()
	}

	for _, s := range snaps {
		ts := utils.FormatTimestamp(s.Timestamp)
		if s.Degraded() {
			result.WriteString("  " + ErrorStyle.Render(IconError) + " " +
				GrayStyle.Render(ts) + " " +
				ErrorStyle.Render("capture failed: "+utils.TruncateString(s.Error, 40)) + "\n")
			continue
		}

		line := fmt.Sprintf("%s  cpu %s  mem %s  load %s",
			ts,
			utils.FormatPercentage(s.CPUPercent),
			utils.FormatPercentage(s.Memory.PercentUsed),
			utils.FormatLoadAvg(s.LoadAvg))
		result.WriteString("  " + PrimaryStyle.Render(IconBullet) + " " + GrayStyle.Render(line) + "\n")
	}
	return result.String()
}

// CreateProcessTable renders top-CPU and top-memory process lists
func CreateProcessTable(cpuProcs []snapshot.CPUProcess, memProcs []snapshot.MemoryProcess) string {
	var result strings.Builder

	if len(cpuProcs) > 0 {
		result.WriteString("  " + TitleStyle.Render("Top CPU") + "\n")
		for _, p := range cpuProcs {
			result.WriteString(fmt.Sprintf("  %s %-7d %-24s %s\n",
				PrimaryStyle.Render(IconBullet),
				p.PID,
				utils.TruncateString(p.Name, 24),
				GrayStyle.Render(utils.FormatPercentage(p.CPUPercent))))
		}
	}

	if len(memProcs) > 0 {
		result.WriteString("  " + TitleStyle.Render("Top Memory") + "\n")
		for _, p := range memProcs {
			result.WriteString(fmt.Sprintf("  %s %-7d %-24s %s\n",
				PrimaryStyle.Render(IconBullet),
				p.PID,
				utils.TruncateString(p.Name, 24),
				GrayStyle.Render(utils.FormatMB(p.RSSMB))))
		}
	}

	return result.String()
}
