package query

import (
	"time"

	"github.com/sandeepkv93/teamcal/internal/dates"
	"github.com/sandeepkv93/teamcal/internal/model"
)

// Range is the inclusive span of the view mode around focus. Month ranges
// cover the whole grid, filler days included.
func Range(mode model.ViewMode, focus time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	switch mode {
	case model.ViewDay:
		return dates.StartOfDay(focus), dates.EndOfDay(focus)
	case model.ViewWeek:
		return dates.StartOfWeek(focus, weekStart), dates.EndOfWeek(focus, weekStart)
	default:
		return dates.StartOfWeek(dates.StartOfMonth(focus), weekStart),
			dates.EndOfWeek(dates.EndOfMonth(focus), weekStart)
	}
}

// Navigate moves focus by delta periods of mode.
func Navigate(mode model.ViewMode, focus time.Time, delta int) time.Time {
	switch mode {
	case model.ViewDay:
		return dates.AddDays(focus, delta)
	case model.ViewWeek:
		return dates.AddDays(focus, 7*delta)
	default:
		return dates.AddMonths(focus, delta)
	}
}

func Today(now time.Time) time.Time {
	return dates.StartOfDay(now)
}

// Title is the header shown above a view, e.g. "March 2024" or "Mar 04 - Mar 10, 2024".
func Title(mode model.ViewMode, focus time.Time, weekStart time.Weekday) string {
	switch mode {
	case model.ViewDay:
		return focus.Format("Monday, January 2, 2006")
	case model.ViewWeek:
		from, to := Range(mode, focus, weekStart)
		if from.Year() != to.Year() {
			return dates.Format(from, dates.DefaultLayout) + " - " + dates.Format(to, dates.DefaultLayout)
		}
		return dates.Format(from, "MMM dd") + " - " + dates.Format(to, dates.DefaultLayout)
	default:
		return focus.Format("January 2006")
	}
}
