// Package query turns the flat task list into what the month, week and day
// views render. Tasks are matched to days by the calendar date of their start
// time and keep their source order unless a function says otherwise.
package query

import (
	"slices"
	"time"

	"github.com/sandeepkv93/teamcal/internal/dates"
	"github.com/sandeepkv93/teamcal/internal/model"
)

// DaySchedule groups one day's tasks by the hour their start falls in.
type DaySchedule struct {
	Date  time.Time
	Hours [24][]model.Task
}

// Tasks flattens the hour buckets in hour order.
func (d DaySchedule) Tasks() []model.Task {
	var out []model.Task
	for _, bucket := range d.Hours {
		out = append(out, bucket...)
	}
	return out
}

func (d DaySchedule) Len() int {
	n := 0
	for _, bucket := range d.Hours {
		n += len(bucket)
	}
	return n
}

type GridDay struct {
	Date    time.Time
	InMonth bool
	Tasks   []model.Task
}

// MonthGrid is a run of whole weeks covering the focus month.
type MonthGrid struct {
	Month time.Time
	Weeks [][7]GridDay
}

func startsOn(t model.Task, day time.Time) bool {
	return dates.IsSameDay(day, t.StartTime)
}

// Day buckets every task starting on the focus day by its start hour.
func Day(tasks []model.Task, focus time.Time) DaySchedule {
	sched := DaySchedule{Date: dates.StartOfDay(focus)}
	for _, t := range tasks {
		if !startsOn(t, focus) {
			continue
		}
		hour := t.StartTime.In(focus.Location()).Hour()
		sched.Hours[hour] = append(sched.Hours[hour], t.Clone())
	}
	return sched
}

// Week returns one DaySchedule per day of the week containing focus.
func Week(tasks []model.Task, focus time.Time, weekStart time.Weekday) []DaySchedule {
	days := dates.WeekDays(focus, weekStart)
	out := make([]DaySchedule, 0, len(days))
	for _, d := range days {
		out = append(out, Day(tasks, d))
	}
	return out
}

func Month(tasks []model.Task, focus time.Time, weekStart time.Weekday) MonthGrid {
	first := dates.StartOfMonth(focus)
	last := dates.EndOfMonth(focus)
	grid := MonthGrid{Month: first}
	for cursor := dates.StartOfWeek(first, weekStart); !cursor.After(last); cursor = dates.AddDays(cursor, 7) {
		var week [7]GridDay
		for i := range week {
			day := dates.AddDays(cursor, i)
			week[i] = GridDay{
				Date:    day,
				InMonth: day.Month() == first.Month() && day.Year() == first.Year(),
				Tasks:   TasksStarting(tasks, day),
			}
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// Days lists the grid in reading order.
func (g MonthGrid) Days() []GridDay {
	out := make([]GridDay, 0, len(g.Weeks)*7)
	for _, w := range g.Weeks {
		out = append(out, w[:]...)
	}
	return out
}

// TasksStarting returns the tasks whose start falls on day.
func TasksStarting(tasks []model.Task, day time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if startsOn(t, day) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// TasksOn returns tasks whose start lies within day, bounds inclusive.
func TasksOn(tasks []model.Task, day time.Time) []model.Task {
	from, to := dates.StartOfDay(day), dates.EndOfDay(day)
	var out []model.Task
	for _, t := range tasks {
		if t.StartTime.IsZero() {
			continue
		}
		if !t.StartTime.Before(from) && !t.StartTime.After(to) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// SortedByStart orders tasks ascending by start. Ties keep source order.
func SortedByStart(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out
}

func ForMember(tasks []model.Task, memberID string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsAssignedTo(memberID) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// OpenTaskCount counts incomplete tasks assigned to memberID.
func OpenTaskCount(tasks []model.Task, memberID string) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed && t.IsAssignedTo(memberID) {
			n++
		}
	}
	return n
}

// MembersByID indexes members by their ID.
func MembersByID(members []model.TeamMember) map[string]model.TeamMember {
	out := make(map[string]model.TeamMember, len(members))
	for _, m := range members {
		out[m.ID] = m
	}
	return out
}
