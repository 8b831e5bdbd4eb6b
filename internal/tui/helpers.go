package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// formatDate renders the day of an attendance record, or N/A before the
// first check-in.
func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Local().Format("2006-01-02")
}

// formatClock renders a check-in/check-out time of day, or N/A when absent.
func formatClock(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Local().Format("15:04")
}

// formatHours renders a server-computed total with the dashboard's two
// decimals. Totals are displayed verbatim, never recomputed.
func formatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if
// needed. A non-positive maxLen yields the empty string, so callers may pass
// a width minus fixed padding without flooring it first.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads or truncates s to exactly width display cells. Only used for
// plain (unstyled) cell text.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return truncStr(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
