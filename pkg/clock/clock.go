package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// System is the production clock backed by time.Now.
type System struct{}

// New returns a System clock.
func New() *System {
	return &System{}
}

// Now returns the current system time.
func (*System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

// At returns a Fixed clock for t.
func At(t time.Time) Fixed {
	return Fixed(t)
}

// Unix returns a Fixed clock for the given number of seconds since the epoch.
func Unix(sec int64) Fixed {
	return Fixed(time.Unix(sec, 0).UTC())
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
