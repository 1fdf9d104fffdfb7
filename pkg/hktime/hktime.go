// Package hktime is the single clock for persisted timestamps.
//
// Every date_registered and last_updated value is produced here: wall-clock time
// in Hong Kong (UTC+08:00), truncated to the millisecond so that a value written
// to the document store reads back identical.
package hktime

import "time"

// Zone is the fixed UTC+08:00 offset used for all stored timestamps.
var Zone = time.FixedZone("HKT", 8*60*60)

// Now returns the current time in Zone with millisecond precision.
func Now() time.Time {
	return Normalize(time.Now())
}

// Normalize converts t to Zone and drops sub-millisecond precision.
func Normalize(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Zone).Truncate(time.Millisecond)
}
