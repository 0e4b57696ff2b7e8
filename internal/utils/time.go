package utils

import "time"

// FormatClock renders the display time attached to chat messages.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}
