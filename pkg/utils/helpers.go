package utils

import (
	"fmt"
	"time"
)

// FormatPercentage formats a float as percentage
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatGB formats a gigabyte value
func FormatGB(value float64) string {
	return fmt.Sprintf("%.1f GB", value)
}

// FormatMB formats a megabyte value
func FormatMB(value float64) string {
	return fmt.Sprintf("%.1f MB", value)
}

// FormatLoadAvg formats the 1/5/15 minute load averages
func FormatLoadAvg(load [3]float64) string {
	return fmt.Sprintf("%.2f %.2f %.2f", load[0], load[1], load[2])
}

// FormatTimestamp renders an epoch-seconds timestamp in local time
func FormatTimestamp(epoch float64) string {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).Format("2006-01-02 15:04:05")
}

// TruncateString truncates a string to specified length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
