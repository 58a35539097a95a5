package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/query"
	"github.com/sandeepkv93/teamcal/internal/store"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Month:
		m.setViewMode(model.ViewMonth)
	case m.Keys.Week:
		m.setViewMode(model.ViewWeek)
	case m.Keys.Day:
		m.setViewMode(model.ViewDay)
	case m.Keys.Prev, "left":
		m.shiftCalendarFocus(-1)
	case m.Keys.Next, "right":
		m.shiftCalendarFocus(1)
	case m.Keys.Today:
		m.Store.SetFocusDate(query.Today(m.now()))
		m.Cursor = 0
		m.syncSelection()
		m.Status = StatusBar{Text: "calendar focus: today"}
	case m.Keys.Up, "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelection()
	case m.Keys.Down, "down":
		m.Cursor++
		m.syncSelection()
	case m.Keys.Done:
		m.toggleSelectedCompleted()
	case m.Keys.Dark:
		m.toggleDarkMode()
	}
	return m
}

func (m *Model) setViewMode(mode model.ViewMode) {
	if err := m.Store.SetViewMode(mode); err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("calendar mode: %s", mode)}
}

func (m *Model) shiftCalendarFocus(delta int) {
	next := query.Navigate(m.Store.ViewMode(), m.Store.FocusDate(), delta)
	m.Store.SetFocusDate(next)
	m.Cursor = 0
	m.syncSelection()
	m.Status = StatusBar{Text: fmt.Sprintf("calendar focus: %s", next.Format("2006-01-02"))}
}

// focusTasks are the tasks touching the focus day, the list j/k walks.
func (m Model) focusTasks() []model.Task {
	return query.SortedByStart(query.TasksOn(m.Store.Tasks(), m.Store.FocusDate()))
}

func (m *Model) syncSelection() {
	tasks := m.focusTasks()
	if len(tasks) == 0 {
		m.Cursor = 0
		m.SelectedTaskID = ""
		return
	}
	if m.Cursor >= len(tasks) {
		m.Cursor = len(tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.SelectedTaskID = tasks[m.Cursor].ID
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.SelectedTaskID == "" {
		return model.Task{}, false
	}
	return m.Store.Task(m.SelectedTaskID)
}

func (m *Model) toggleSelectedCompleted() {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	updated, err := m.Store.UpdateTask(m.ctx, t.ID, model.TaskPatch{Completed: model.Ptr(!t.Completed)})
	if err != nil && !errors.Is(err, store.ErrNotPersisted) {
		m.setError(err)
		return
	}
	state := "reopened"
	if updated.Completed {
		state = "completed"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s %s", state, updated.Title)}
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) toggleDarkMode() {
	dark := !m.Store.DarkMode()
	if err := m.Store.SetDarkMode(m.ctx, dark); err != nil {
		m.setError(err)
		return
	}
	theme := "light"
	if dark {
		theme = "dark"
	}
	m.Status = StatusBar{Text: "theme: " + theme}
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.WithError(err).Warn("calendar action failed")
}
