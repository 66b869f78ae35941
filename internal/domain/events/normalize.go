package events

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are the accepted wire formats for event dates, most
// specific first. Clients send ISO-8601; datetime-local form inputs omit the
// zone, date pickers omit the time entirely.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp normalizes a wire date string into a UTC timestamp.
// Zone-less layouts are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
