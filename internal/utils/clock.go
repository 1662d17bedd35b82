package utils

import "time"

// Clock abstracts wall-clock time so effective-dating logic can be tested
// with a fixed "today" instead of the real date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the real-time clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock always reports the given instant. Test use.
type FixedClock struct{ T time.Time }

func (f FixedClock) Now() time.Time { return f.T }

// DateOnly truncates an instant to midnight UTC. All "active today" and
// overdue comparisons are date-only.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PeriodMonth normalizes a date to the first day of its calendar month.
func PeriodMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
