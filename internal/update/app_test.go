package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/storage"
	"github.com/sandeepkv93/teamcal/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func newTestModel(t *testing.T, p store.Persistence) (Model, *store.Store) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := store.Open(t.Context(), p, store.WithClock(clock), store.WithLogger(logger))
	return NewModel(s, Options{Context: t.Context(), Logger: logger, Now: clock}), s
}

func addTask(t *testing.T, s *store.Store, title string, day, hour int) model.Task {
	t.Helper()
	start := time.Date(2024, 3, day, hour, 0, 0, 0, time.Local)
	created, err := s.AddTask(t.Context(), model.Task{Title: title, StartTime: start, EndTime: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	return created
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		m = updated.(Model)
	}
	return m
}

func typeCommand(t *testing.T, m Model, line string) Model {
	t.Helper()
	m = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m, s := newTestModel(t, nil)
	if m.Keys.Quit != "q" || m.Keys.Dark != "D" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.PreviewLimit != 2 || m.WeekStart != time.Sunday {
		t.Fatalf("unexpected defaults: limit=%d week=%v", m.PreviewLimit, m.WeekStart)
	}
	if m.SelectedTaskID != "" {
		t.Fatalf("empty store should select nothing, got %q", m.SelectedTaskID)
	}
	if s.ViewMode() != model.ViewMonth || !s.FocusDate().Equal(fixedNow) {
		t.Fatalf("unexpected store state: mode=%s focus=%v", s.ViewMode(), s.FocusDate())
	}
}

func TestModeKeys(t *testing.T) {
	m, s := newTestModel(t, nil)
	cases := []struct {
		key  string
		want model.ViewMode
	}{
		{"w", model.ViewWeek},
		{"d", model.ViewDay},
		{"m", model.ViewMonth},
	}
	for _, tc := range cases {
		m = press(t, m, tc.key)
		if s.ViewMode() != tc.want {
			t.Fatalf("key %q: mode = %s, want %s", tc.key, s.ViewMode(), tc.want)
		}
	}

	updated, _ := m.Update(SetViewMsg{Mode: model.ViewMode("year")})
	m = updated.(Model)
	if !m.Status.IsError || s.ViewMode() != model.ViewMonth {
		t.Fatalf("invalid mode should be rejected: status=%+v mode=%s", m.Status, s.ViewMode())
	}
}

func TestNavigation(t *testing.T) {
	m, s := newTestModel(t, nil)

	m = press(t, m, "l")
	if got := s.FocusDate(); got.Month() != time.April || got.Day() != 15 {
		t.Fatalf("month next: got %v", got)
	}
	m = press(t, m, "h", "h")
	if got := s.FocusDate(); got.Month() != time.February || got.Day() != 15 {
		t.Fatalf("month prev: got %v", got)
	}

	m = press(t, m, "w", "l")
	if got := s.FocusDate(); got.Month() != time.February || got.Day() != 22 {
		t.Fatalf("week next: got %v", got)
	}
	m = press(t, m, "d", "h")
	if got := s.FocusDate(); got.Day() != 21 {
		t.Fatalf("day prev: got %v", got)
	}

	press(t, m, "t")
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if got := s.FocusDate(); !got.Equal(want) {
		t.Fatalf("today: got %v, want %v", got, want)
	}
}

func TestSelectionAndCompletion(t *testing.T) {
	m, s := newTestModel(t, nil)
	late := addTask(t, s, "Review", 15, 14)
	early := addTask(t, s, "Standup", 15, 9)
	addTask(t, s, "Elsewhere", 16, 9)

	m = press(t, m, "t")
	if m.SelectedTaskID != early.ID {
		t.Fatalf("expected earliest task selected, got %q", m.SelectedTaskID)
	}
	m = press(t, m, "j", "j")
	if m.SelectedTaskID != late.ID || m.Cursor != 1 {
		t.Fatalf("cursor should stop at the last task, got %q at %d", m.SelectedTaskID, m.Cursor)
	}
	m = press(t, m, "k")
	if m.SelectedTaskID != early.ID {
		t.Fatalf("expected first task again, got %q", m.SelectedTaskID)
	}

	m = press(t, m, "x")
	if got, _ := s.Task(early.ID); !got.Completed {
		t.Fatal("expected task completed")
	}
	if m.Status.Text != "completed Standup" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	press(t, m, "x")
	if got, _ := s.Task(early.ID); got.Completed {
		t.Fatal("expected task reopened")
	}
}

func TestToggleWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "x")
	if !m.Status.IsError || m.Status.Text != "no task selected" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestDarkModeIsPersisted(t *testing.T) {
	logger, _ := test.NewNullLogger()
	adapter := storage.NewAdapter(storage.NewMemoryKV(), logger)
	m, s := newTestModel(t, adapter)

	press(t, m, "D")
	if !s.DarkMode() {
		t.Fatal("expected dark mode on")
	}
	reopened := store.Open(t.Context(), adapter)
	if !reopened.DarkMode() {
		t.Fatal("dark mode should survive a reload")
	}
}

func TestPaletteDrivesStore(t *testing.T) {
	m, s := newTestModel(t, nil)

	m = typeCommand(t, m, "add 2024-03-15 10:00 11:00 Design review")
	if m.Palette.Active {
		t.Fatal("palette should close after enter")
	}
	if m.Status.IsError || !strings.HasPrefix(m.Status.Text, "added Design review") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Design review" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if m.SelectedTaskID != tasks[0].ID {
		t.Fatalf("new task on the focus day should be selectable, got %q", m.SelectedTaskID)
	}

	id := tasks[0].ID
	m = typeCommand(t, m, "edit "+id+" title:Design sync desc:Bring **mockups**")
	m = typeCommand(t, m, "move "+id+" 2024-03-15 14:00 15:30")
	if m.Status.IsError || !strings.HasPrefix(m.Status.Text, "moved Design sync") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if got, _ := s.Task(id); got.Description != "Bring **mockups**" || got.StartTime.Hour() != 14 || got.Duration() != 90*time.Minute {
		t.Fatalf("edit/move not applied: %+v", got)
	}

	m = typeCommand(t, m, "member Bo Kim")
	mem := s.TeamMembers()[0]
	m = typeCommand(t, m, "rename "+mem.ID+" Bo Park role:Design")
	if got, _ := s.TeamMember(mem.ID); got.Name != "Bo Park" || got.Role != "Design" {
		t.Fatalf("rename not applied: %+v", got)
	}

	m = typeCommand(t, m, "edit "+id+" title:")
	if !m.Status.IsError || !errors.Is(m.LastError, model.ErrTitleRequired) {
		t.Fatalf("expected validation error, got status=%+v err=%v", m.Status, m.LastError)
	}
	if got, _ := s.Task(id); got.Title != "Design sync" {
		t.Fatalf("rejected edit reached the store: %+v", got)
	}

	m = typeCommand(t, m, "goto 2024-05-01")
	if got := s.FocusDate(); got.Month() != time.May || got.Day() != 1 {
		t.Fatalf("goto: focus = %v", got)
	}
	if m.SelectedTaskID != "" {
		t.Fatalf("no tasks on the new focus day, got %q", m.SelectedTaskID)
	}

	m = typeCommand(t, m, "add 2024-03-15 11:00 10:00 Backwards")
	if !m.Status.IsError || !errors.Is(m.LastError, model.ErrInvalidTimeRange) {
		t.Fatalf("expected validation error, got status=%+v err=%v", m.Status, m.LastError)
	}
	if len(s.Tasks()) != 1 {
		t.Fatal("invalid task reached the store")
	}

	m = typeCommand(t, m, "launch rockets")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteEscape(t *testing.T) {
	m, s := newTestModel(t, nil)
	m = press(t, m, "/", "w")
	if s.ViewMode() != model.ViewMonth {
		t.Fatal("keys typed into the palette must not reach the calendar")
	}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("expected palette closed and cleared, got %+v", m.Palette)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t, nil)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error state: %+v %v", next.Status, next.LastError)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestViewRendersCalendar(t *testing.T) {
	m, s := newTestModel(t, nil)
	if _, err := s.AddTeamMember(t.Context(), model.TeamMember{Name: "Ana Lee", Color: "#FF6B6B"}); err != nil {
		t.Fatalf("add member: %v", err)
	}
	addTask(t, s, "Standup", 15, 9)
	m = press(t, m, "t", "?")

	out := m.View()
	for _, want := range []string{"teamcal | Month | March 2024", "Team", "AL Ana Lee", "Standup", "help (Month view)", "goto <date>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if next.View() != "" {
		t.Fatal("quitting model should render nothing")
	}
}
