package kernel

import "time"

// Clock returns the current instant. Handlers take a Clock instead of calling
// time.Now so tests can pin timestamps.
type Clock func() time.Time

// SystemClock returns the wall clock in UTC.
func SystemClock() Clock {
	return func() time.Time {
		return time.Now().UTC()
	}
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
