package domain

import "time"

// now is replaced in tests to pin timestamps and due-date checks.
var now = func() time.Time {
	return time.Now().UTC()
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
