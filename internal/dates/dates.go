// Package dates holds the calendar arithmetic behind the month, week and day
// views. Every function returns a new value and keeps the location of its input.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const DefaultLayout = "MMM dd, yyyy"

var monthAbbrev = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfWeek rolls t back to the most recent startDay, at midnight.
func StartOfWeek(t time.Time, startDay time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(startDay) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func EndOfWeek(t time.Time, startDay time.Weekday) time.Time {
	return EndOfDay(StartOfWeek(t, startDay).AddDate(0, 0, 6))
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth is day 0 of the following month, which time.Date normalizes to
// the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// IsSameDay compares calendar dates in a's location.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func WeekDays(t time.Time, startDay time.Weekday) []time.Time {
	start := StartOfWeek(t, startDay)
	out := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

func MonthDays(t time.Time) []time.Time {
	start := StartOfMonth(t)
	n := DaysInMonth(t)
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths moves t by n calendar months, keeping the wall clock. A day that
// does not exist in the target month is clamped to its last day, so
// Jan 31 + 1 month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysInMonth(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// Format substitutes MMM, MM, dd, yyyy, HH and mm in pattern. Month names are
// always English abbreviations.
func Format(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultLayout
	}
	r := strings.NewReplacer(
		"MMM", monthAbbrev[t.Month()-1],
		"MM", pad2(int(t.Month())),
		"yyyy", strconv.Itoa(t.Year()),
		"dd", pad2(t.Day()),
		"HH", pad2(t.Hour()),
		"mm", pad2(t.Minute()),
	)
	return r.Replace(pattern)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
