package analytics

import "time"

// Clock supplies the current time to normalizers and stores.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time {
	return time.Now().UTC()
})

// FixedClock always returns t. Used by tests and replays.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time {
		return t
	})
}
