// Package biztime centralizes time handling. All storage and transport use
// UTC; persistence columns hold Unix milliseconds.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FromMillis converts a Unix-millisecond column value to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToMillis converts a time to its Unix-millisecond column value.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}
