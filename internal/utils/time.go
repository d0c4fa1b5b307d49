package utils

import "time"

// TimestampLayout is the persisted datetime format (second precision, local time)
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in the persisted datetime format
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a persisted datetime in the local time zone
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// NowSeconds returns the current time truncated to whole seconds
func NowSeconds() time.Time {
	return time.Now().Truncate(time.Second)
}
