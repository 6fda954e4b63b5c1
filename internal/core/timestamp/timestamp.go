// Package timestamp provides the UTC clock shared by the kanban entities.
package timestamp

import "time"

var clock = func() time.Time { return time.Now() }

// Now returns the current time in UTC.
func Now() time.Time {
	return clock().UTC()
}

// Next returns a refreshed timestamp that is strictly after prev.
// If the clock has not advanced past prev, prev is bumped by one nanosecond.
func Next(prev time.Time) time.Time {
	t := Now()
	if !t.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return t
}

// SetClock replaces the clock and returns a func restoring the previous one.
// Intended for tests.
func SetClock(fn func() time.Time) (restore func()) {
	prev := clock
	clock = fn
	return func() { clock = prev }
}
