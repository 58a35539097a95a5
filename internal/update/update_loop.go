package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/query"
	"github.com/sandeepkv93/teamcal/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			return m.openPalette(), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "esc":
			m.HelpVisible = false
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleCalendarKey(typed), nil
	case SetViewMsg:
		m.setViewMode(typed.Mode)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	dark := m.Store.DarkMode()
	theme := views.ThemeFor(dark)
	tasks := m.Store.Tasks()
	members := query.MembersByID(m.Store.TeamMembers())
	mode := m.Store.ViewMode()
	focus := m.Store.FocusDate()

	cal := views.CalendarData{
		Theme:        theme,
		Mode:         mode,
		Today:        query.Today(m.now()),
		Focus:        focus,
		WeekStart:    m.WeekStart,
		PreviewLimit: m.PreviewLimit,
		SelectedID:   m.SelectedTaskID,
		Members:      members,
	}
	switch mode {
	case model.ViewDay:
		cal.Day = query.Day(tasks, focus)
	case model.ViewWeek:
		cal.Week = query.Week(tasks, focus, m.WeekStart)
	default:
		cal.Month = query.Month(tasks, focus, m.WeekStart)
	}

	detail := ""
	if t, ok := m.selectedTask(); ok {
		detail = views.RenderTaskDetail(views.TaskDetailData{Theme: theme, Dark: dark, Task: t, Members: members})
	}

	return views.RenderApp(views.AppData{
		Theme:      theme,
		Header:     fmt.Sprintf("teamcal | %s | %s", views.ModeLabel(mode), query.Title(mode, focus, m.WeekStart)),
		Sidebar:    views.RenderSidebar(theme, memberRows(m.Store.TeamMembers(), tasks)),
		Main:       views.RenderCalendar(cal),
		Detail:     detail,
		StatusLine: m.Status.Text,
		StatusErr:  m.Status.IsError,
		Palette:    views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		Help:       m.renderHelpIfVisible(),
		Footer: fmt.Sprintf("keys: %s/%s/%s view | %s/%s move | %s today | %s/%s select | %s done | %s theme | / cmd | %s help | %s quit",
			m.Keys.Month, m.Keys.Week, m.Keys.Day, m.Keys.Prev, m.Keys.Next, m.Keys.Today,
			m.Keys.Down, m.Keys.Up, m.Keys.Done, m.Keys.Dark, m.Keys.Help, m.Keys.Quit),
	})
}
