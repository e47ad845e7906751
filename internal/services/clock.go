package services

import "time"

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// stamp normalizes a timestamp to what every supported database stores
// losslessly: UTC with microsecond precision.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns a timestamp strictly after prev, using now when the
// clock has moved on and prev+1µs otherwise.
func nextUpdatedAt(now, prev time.Time) time.Time {
	next := stamp(now)
	if !next.After(prev) {
		next = stamp(prev).Add(time.Microsecond)
	}
	return next
}
