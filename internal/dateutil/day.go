// Package dateutil provides whole-day calendar arithmetic in local time.
// Day offsets are computed by stepping calendar days, never by dividing
// elapsed seconds, so daylight-saving transitions cannot skew them.
package dateutil

import "time"

// DayKeyLayout formats a time as its calendar-day key.
const DayKeyLayout = "2006-01-02"

// DayOf truncates t to midnight of its calendar day, in t's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey returns the stable YYYY-MM-DD identifier for t's calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// WholeDaysBetween returns the signed count of calendar days from a's day
// to b's day. Same day yields 0; b one calendar day after a yields 1.
func WholeDaysBetween(a, b time.Time) int {
	from, to := DayOf(a), DayOf(b)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}
	n := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n * sign
}

// DaysBetween enumerates every calendar day from a's day through b's day
// inclusive, ascending. Returns nil if b's day precedes a's.
func DaysBetween(a, b time.Time) []time.Time {
	from, to := DayOf(a), DayOf(b)
	if to.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// NextMidnight returns the first instant of the calendar day after t.
func NextMidnight(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1)
}

// UntilNextMidnight returns the wall-clock duration from t to the next
// local midnight. Recomputing this at every timer firing (rather than
// reusing a fixed 24h interval) keeps the midnight trigger correct across
// suspend gaps and DST shifts.
func UntilNextMidnight(t time.Time) time.Duration {
	return NextMidnight(t).Sub(t)
}
