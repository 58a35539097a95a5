package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/teamcal/internal/dates"
	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/query"
)

const cellWidth = 14

type CalendarData struct {
	Theme        Theme
	Mode         model.ViewMode
	Today        time.Time
	Focus        time.Time
	WeekStart    time.Weekday
	PreviewLimit int
	SelectedID   string
	Members      map[string]model.TeamMember

	Month query.MonthGrid
	Week  []query.DaySchedule
	Day   query.DaySchedule
}

func RenderCalendar(d CalendarData) string {
	switch d.Mode {
	case model.ViewDay:
		return renderDay(d)
	case model.ViewWeek:
		return renderWeek(d)
	default:
		return renderMonth(d)
	}
}

func weekdayHeader(st Styles, start time.Weekday) string {
	cells := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(start) + i) % 7)
		cells = append(cells, st.Dim.Width(cellWidth).Render(wd.String()[:3]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderMonth(d CalendarData) string {
	st := d.Theme.Styles()
	limit := d.PreviewLimit
	if limit <= 0 {
		limit = 2
	}
	rows := []string{weekdayHeader(st, d.WeekStart)}
	for _, week := range d.Month.Weeks {
		cells := make([]string, 0, 7)
		for _, day := range week {
			cells = append(cells, renderMonthCell(d, st, day, limit))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func renderMonthCell(d CalendarData, st Styles, day query.GridDay, limit int) string {
	label := fmt.Sprintf("%2d", day.Date.Day())
	switch {
	case dates.IsSameDay(day.Date, d.Focus):
		label = st.Selected.Render(label)
	case dates.IsSameDay(day.Date, d.Today):
		label = st.Today.Render(label)
	case !day.InMonth:
		label = st.Dim.Render(label)
	}
	lines := []string{label}
	for i, t := range day.Tasks {
		if i == limit {
			lines = append(lines, st.Dim.Render(fmt.Sprintf("+%d more", len(day.Tasks)-limit)))
			break
		}
		lines = append(lines, taskLabel(st, t, d.SelectedID, cellWidth-1))
	}
	for len(lines) < limit+2 {
		lines = append(lines, "")
	}
	return st.Cell.Render(strings.Join(lines, "\n"))
}

func renderWeek(d CalendarData) string {
	st := d.Theme.Styles()
	cols := make([]string, 0, len(d.Week))
	for _, sched := range d.Week {
		head := dates.Format(sched.Date, "dd") + " " + sched.Date.Weekday().String()[:3]
		switch {
		case dates.IsSameDay(sched.Date, d.Focus):
			head = st.Selected.Render(head)
		case dates.IsSameDay(sched.Date, d.Today):
			head = st.Today.Render(head)
		}
		lines := []string{head}
		if sched.Len() == 0 {
			lines = append(lines, st.Dim.Render("-"))
		}
		for _, t := range sched.Tasks() {
			hour := t.StartTime.In(sched.Date.Location()).Hour()
			lines = append(lines, st.Dim.Render(fmt.Sprintf("%02d", hour))+" "+taskLabel(st, t, d.SelectedID, cellWidth-4))
		}
		cols = append(cols, st.Cell.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderDay(d CalendarData) string {
	st := d.Theme.Styles()
	var b strings.Builder
	for hour, bucket := range d.Day.Hours {
		b.WriteString(st.Dim.Render(fmt.Sprintf("%02d:00 │", hour)))
		for i, t := range bucket {
			if i > 0 {
				b.WriteString(st.Dim.Render(" ·"))
			}
			b.WriteString(" " + taskLabel(st, t, d.SelectedID, 40))
			if who := assigneeInitials(t, d.Members); who != "" {
				b.WriteString(st.Dim.Render(" [" + who + "]"))
			}
		}
		if hour < len(d.Day.Hours)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func taskLabel(st Styles, t model.Task, selectedID string, width int) string {
	text := truncate(t.Title, width)
	if t.ID == selectedID {
		return st.Selected.Render(text)
	}
	return st.TaskStyle(t.Color, t.Completed).Render(text)
}

func assigneeInitials(t model.Task, members map[string]model.TeamMember) string {
	out := make([]string, 0, len(t.AssignedMemberIDs))
	for _, id := range t.AssignedMemberIDs {
		if m, ok := members[id]; ok {
			out = append(out, m.Initials())
		}
	}
	return strings.Join(out, ",")
}

// formatDuration prints whole hours and minutes, e.g. "1h30m" or "45m".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Minute)
	h, m := int(d/time.Hour), int(d%time.Hour/time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

type MemberRow struct {
	Member    model.TeamMember
	OpenTasks int
}

func RenderSidebar(theme Theme, rows []MemberRow) string {
	st := theme.Styles()
	lines := []string{st.Header.Render("Team")}
	if len(rows) == 0 {
		lines = append(lines, st.Dim.Render("no members yet"))
	}
	for _, r := range rows {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Member.Color)).Render("●")
		line := fmt.Sprintf("%s %s %s", dot, r.Member.Initials(), truncate(r.Member.Name, 12))
		if r.OpenTasks > 0 {
			line += st.Dim.Render(fmt.Sprintf(" (%d)", r.OpenTasks))
		}
		lines = append(lines, line)
		if r.Member.Role != "" {
			lines = append(lines, st.Dim.Render("    "+truncate(r.Member.Role, 16)))
		}
	}
	return strings.Join(lines, "\n")
}

type TaskDetailData struct {
	Theme   Theme
	Dark    bool
	Task    model.Task
	Members map[string]model.TeamMember
}

func RenderTaskDetail(d TaskDetailData) string {
	st := d.Theme.Styles()
	t := d.Task
	status := "open"
	if t.Completed {
		status = "done"
	}
	var names []string
	for _, id := range t.AssignedMemberIDs {
		if m, ok := d.Members[id]; ok {
			names = append(names, m.Name)
		}
	}
	assigned := "unassigned"
	if len(names) > 0 {
		assigned = strings.Join(names, ", ")
	}
	lines := []string{
		st.TaskStyle(t.Color, false).Bold(true).Render(t.Title) + st.Dim.Render("  "+t.ID),
		fmt.Sprintf("%s  %s-%s (%s)  %s", dates.Format(t.StartTime, dates.DefaultLayout), dates.Format(t.StartTime, "HH:mm"), dates.Format(t.EndTime, "HH:mm"), formatDuration(t.Duration()), status),
		"assigned: " + assigned,
	}
	if desc := RenderMarkdown(t.Description, d.Dark); desc != "" {
		lines = append(lines, "", desc)
	}
	return strings.Join(lines, "\n")
}
