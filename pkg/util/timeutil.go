package util

import "time"

// Clock returns the current time; injected where tests need a fixed instant.
type Clock func() time.Time

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MillisSince reports the elapsed milliseconds between start and clock().
func MillisSince(clock Clock, start time.Time) int64 {
	if clock == nil {
		clock = NowUTC
	}
	return clock().Sub(start).Milliseconds()
}
