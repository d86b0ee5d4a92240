package kernel

import "time"

// DateOf truncates t to midnight UTC. Due dates and pickup dates are calendar
// days and are always compared through it.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsBeforeDay reports whether day a falls strictly before day b.
func IsBeforeDay(a, b time.Time) bool {
	return DateOf(a).Before(DateOf(b))
}
