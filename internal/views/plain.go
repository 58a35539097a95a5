package views

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sandeepkv93/teamcal/internal/dates"
	"github.com/sandeepkv93/teamcal/internal/model"
)

// ModeLabel is the display name of a view mode, e.g. "Week".
func ModeLabel(m model.ViewMode) string {
	return cases.Title(language.English).String(string(m))
}

type AgendaDay struct {
	Date  time.Time
	Tasks []model.Task
}

type AgendaData struct {
	Title   string
	Days    []AgendaDay
	Members map[string]model.TeamMember
}

// RenderAgenda is the uncoloured listing used outside the terminal UI. Days
// without tasks are left out.
func RenderAgenda(d AgendaData) string {
	var b strings.Builder
	b.WriteString(d.Title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(d.Title))) + "\n")
	empty := true
	for _, day := range d.Days {
		if len(day.Tasks) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(&b, "\n%s %s\n", day.Date.Weekday().String()[:3], dates.Format(day.Date, "MMM dd"))
		for _, t := range day.Tasks {
			fmt.Fprintf(&b, "  %s-%s %s %s%s\n",
				dates.Format(t.StartTime, "HH:mm"),
				dates.Format(t.EndTime, "HH:mm"),
				checkbox(t.Completed),
				t.Title,
				assigneeSuffix(t, d.Members),
			)
		}
	}
	if empty {
		b.WriteString("\n(no tasks)\n")
	}
	return b.String()
}

// RenderTaskList prints one line per task in the given order.
func RenderTaskList(tasks []model.Task, members map[string]model.TeamMember) string {
	if len(tasks) == 0 {
		return "(no tasks)\n"
	}
	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "%-9s  %s  %s  %s %s%s\n",
			t.ID,
			dates.Format(t.StartTime, "yyyy-MM-dd HH:mm"),
			dates.Format(t.EndTime, "HH:mm"),
			checkbox(t.Completed),
			t.Title,
			assigneeSuffix(t, members),
		)
	}
	return b.String()
}

type MemberListRow struct {
	Member    model.TeamMember
	OpenTasks int
}

func RenderMemberList(rows []MemberListRow) string {
	if len(rows) == 0 {
		return "(no members)\n"
	}
	var b strings.Builder
	for _, r := range rows {
		role := r.Member.Role
		if role == "" {
			role = "-"
		}
		fmt.Fprintf(&b, "%-9s  %-2s  %s  %s  open:%d\n", r.Member.ID, r.Member.Initials(), r.Member.Name, role, r.OpenTasks)
	}
	return b.String()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func assigneeSuffix(t model.Task, members map[string]model.TeamMember) string {
	var names []string
	for _, id := range t.AssignedMemberIDs {
		if m, ok := members[id]; ok {
			names = append(names, m.Name)
		} else {
			names = append(names, id)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return " (" + strings.Join(names, ", ") + ")"
}
