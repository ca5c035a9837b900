package util

import "time"

// Clock yields the current time. Services hold one so tests can pin it.
type Clock func() time.Time

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ElapsedMs reports whole milliseconds between start and the clock's current reading.
func ElapsedMs(clock Clock, start time.Time) int64 {
	if clock == nil {
		clock = NowUTC
	}
	elapsed := clock().Sub(start)
	if elapsed < 0 {
		return 0
	}
	return elapsed.Milliseconds()
}
