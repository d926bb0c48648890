package domain

import (
	"fmt"
	"strings"
	"time"
)

// Layouts without a zone parse as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant parses an ISO-8601 value and converts it to a UTC instant
// truncated to milliseconds.
func ParseInstant(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range isoLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return NormalizeInstant(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format %q", raw)
}

// ParseTimestamp is the lenient variant of ParseInstant: empty or malformed
// input yields now().
func ParseTimestamp(raw string, now func() time.Time) time.Time {
	parsed, err := ParseInstant(raw)
	if err == nil {
		return parsed
	}
	if now == nil {
		now = time.Now
	}
	return NormalizeInstant(now())
}

// NormalizeInstant converts t to UTC at storage precision.
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders t as ISO-8601 UTC with a trailing Z.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}
