package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/store"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add 2024-03-04 09:00 09:30 daily standup", TypeAdd},
		{"member Ana Lee role:Engineer", TypeMember},
		{"assign t1 m1", TypeAssign},
		{"unassign t1", TypeUnassign},
		{"DONE t1", TypeDone},
		{"delete t1", TypeDelete},
		{"drop m1", TypeDrop},
		{"/goto 2024-03-01", TypeGoto},
		{"edit abc title:New", TypeEdit},
		{"move abc 2024-03-05 10:00 11:00", TypeMove},
		{"rename m1 Bob", TypeRename},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in, time.UTC)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("add 2024-03-04 09:00 09:30 daily  standup", time.UTC)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "daily standup" {
		t.Fatalf("unexpected title %q", cmd.Add.Title)
	}
	if !cmd.Add.Start.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", cmd.Add.Start)
	}
	if !cmd.Add.End.Equal(time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end %v", cmd.Add.End)
	}
}

func TestParseMemberRole(t *testing.T) {
	cmd, err := Parse("member Ana Lee role:QA", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Member.Name != "Ana Lee" || cmd.Member.Role != "QA" {
		t.Fatalf("unexpected member args: %+v", cmd.Member)
	}
}

func TestParseEditFields(t *testing.T) {
	cmd, err := Parse("edit t1 title:Weekly sync at 09:30 color:#4ECDC4 desc:Bring **notes**", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	e := cmd.Edit
	if e.TaskID != "t1" || e.Title == nil || *e.Title != "Weekly sync at 09:30" {
		t.Fatalf("unexpected edit args: %+v", e)
	}
	if e.Color == nil || *e.Color != "#4ECDC4" || e.Description == nil || *e.Description != "Bring **notes**" {
		t.Fatalf("unexpected edit args: %+v", e)
	}

	cmd, err = Parse("edit t1 DESC:", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Edit.Title != nil || cmd.Edit.Description == nil || *cmd.Edit.Description != "" {
		t.Fatalf("expected only the description to be cleared: %+v", cmd.Edit)
	}
}

func TestParseRename(t *testing.T) {
	cmd, err := Parse("rename m1 Bo Kim role:Tech Lead", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	r := cmd.Rename
	if r.MemberID != "m1" || r.Name == nil || *r.Name != "Bo Kim" || r.Role == nil || *r.Role != "Tech Lead" || r.Color != nil {
		t.Fatalf("unexpected rename args: %+v", r)
	}

	cmd, err = Parse("rename m1 color:#abc", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Rename.Name != nil || cmd.Rename.Color == nil || *cmd.Rename.Color != "#abc" {
		t.Fatalf("expected a color-only rename: %+v", cmd.Rename)
	}
}

func TestParseMove(t *testing.T) {
	cmd, err := Parse("move t1 2024-03-05 13:15 14:00", time.UTC)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	m := cmd.Move
	if m.TaskID != "t1" || !m.Start.Equal(time.Date(2024, 3, 5, 13, 15, 0, 0, time.UTC)) || !m.End.Equal(time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected move args: %+v", m)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]ErrorCode{
		"":                                 ErrCodeEmptyInput,
		"  /  ":                            ErrCodeEmptyInput,
		"/unknown do x":                    ErrCodeUnknownCommand,
		"add 2024-03-04 09:00 title":       ErrCodeInvalidArgument,
		"add 03/04/2024 09:00 10:00 title": ErrCodeInvalidArgument,
		"add 2024-03-04 9am 10:00 title":   ErrCodeInvalidArgument,
		"add 2024-03-04 09:00 25:00 title": ErrCodeInvalidArgument,
		"assign t1":                        ErrCodeInvalidArgument,
		"done":                             ErrCodeInvalidArgument,
		"member role:Lead":                 ErrCodeInvalidArgument,
		"goto tomorrow":                    ErrCodeInvalidArgument,
		"edit t1":                          ErrCodeInvalidArgument,
		"edit title:New":                   ErrCodeInvalidArgument,
		"edit t1 extra title:New":          ErrCodeInvalidArgument,
		"edit t1 color:red":                ErrCodeInvalidArgument,
		"move t1 2024-03-05 10:00":         ErrCodeInvalidArgument,
		"move t1 2024-03-05 10:00 noon":    ErrCodeInvalidArgument,
		"rename m1":                        ErrCodeInvalidArgument,
		"rename m1 color:#12":              ErrCodeInvalidArgument,
	}
	for in, want := range cases {
		_, err := Parse(in, time.UTC)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != want {
			t.Fatalf("parse %q: expected %s, got %v", in, want, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/done t1", nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(t.Context(), cmd, Handlers{
		Done: func(_ context.Context, a TargetArgs) (Result, error) {
			called = true
			if a.ID != "t1" {
				t.Fatalf("unexpected target: %q", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"drop m1", "goto 2024-01-01", "member Bo", "edit t1 title:x", "move t1 2024-01-01 09:00 10:00", "rename m1 Bo"} {
		cmd, err := Parse(in, nil)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(t.Context(), cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}

func run(t *testing.T, h Handlers, line string) (Result, error) {
	t.Helper()
	cmd, err := Parse(line, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	return Execute(t.Context(), cmd, h)
}

func TestBindDrivesStore(t *testing.T) {
	s := store.Open(t.Context(), nil)
	var jumped time.Time
	h := Bind(s, func(d time.Time) { jumped = d })

	if _, err := run(t, h, "member Ana Lee role:Dev"); err != nil {
		t.Fatalf("member: %v", err)
	}
	if _, err := run(t, h, "add 2024-03-04 09:00 09:30 Standup"); err != nil {
		t.Fatalf("add: %v", err)
	}
	member := s.TeamMembers()[0]
	task := s.Tasks()[0]
	if member.Role != "Dev" || member.Color == "" {
		t.Fatalf("unexpected member: %+v", member)
	}

	if _, err := run(t, h, "assign "+task.ID+" "+member.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got, _ := s.Task(task.ID); !got.IsAssignedTo(member.ID) {
		t.Fatalf("expected assignment, got %+v", got)
	}
	if _, err := run(t, h, "done "+task.ID); err != nil {
		t.Fatalf("done: %v", err)
	}
	if got, _ := s.Task(task.ID); !got.Completed {
		t.Fatal("expected task completed")
	}
	if _, err := run(t, h, "unassign "+task.ID); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if got, _ := s.Task(task.ID); len(got.AssignedMemberIDs) != 0 {
		t.Fatalf("expected no assignees, got %v", got.AssignedMemberIDs)
	}

	if _, err := run(t, h, "edit "+task.ID+" title:Daily standup color:#4ECDC4 desc:Blockers first"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := run(t, h, "move "+task.ID+" 2024-03-05 10:00 10:45"); err != nil {
		t.Fatalf("move: %v", err)
	}
	got, _ := s.Task(task.ID)
	if got.Title != "Daily standup" || got.Color != "#4ECDC4" || got.Description != "Blockers first" {
		t.Fatalf("edit not applied: %+v", got)
	}
	if !got.StartTime.Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)) || got.Duration() != 45*time.Minute {
		t.Fatalf("move not applied: %v-%v", got.StartTime, got.EndTime)
	}
	if _, err := run(t, h, "rename "+member.ID+" Ana Lee-Park role:Lead"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if m, _ := s.TeamMember(member.ID); m.Name != "Ana Lee-Park" || m.Role != "Lead" || m.Color != member.Color {
		t.Fatalf("rename not applied: %+v", m)
	}

	if _, err := run(t, h, "goto 2024-03-01"); err != nil {
		t.Fatalf("goto: %v", err)
	}
	if !jumped.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) || !s.FocusDate().Equal(jumped) {
		t.Fatalf("focus not moved: callback=%v store=%v", jumped, s.FocusDate())
	}

	if _, err := run(t, h, "drop "+member.ID); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := run(t, h, "delete "+task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Tasks()) != 0 || len(s.TeamMembers()) != 0 {
		t.Fatal("expected empty store")
	}
}

func TestBindValidatesAtBoundary(t *testing.T) {
	s := store.Open(t.Context(), nil)
	h := Bind(s, nil)

	_, err := run(t, h, "add 2024-03-04 10:00 09:00 Backwards")
	if !errors.Is(err, model.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("invalid task reached the store")
	}

	_, err = run(t, h, "add 2024-03-04 09:00 10:00 Kept")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	kept := s.Tasks()[0]

	_, err = run(t, h, "edit "+kept.ID+" title:")
	if !errors.Is(err, model.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	_, err = run(t, h, "move "+kept.ID+" 2024-03-05 11:00 10:00")
	if !errors.Is(err, model.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if got, _ := s.Task(kept.ID); got.Title != "Kept" || got.StartTime.Hour() != 9 {
		t.Fatalf("rejected edits reached the store: %+v", got)
	}
	for _, line := range []string{"edit missing title:x", "move missing 2024-03-05 09:00 10:00", "rename missing Bo"} {
		if _, err := run(t, h, line); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("%q: expected ErrNotFound, got %v", line, err)
		}
	}

	_, err = run(t, h, "assign nope nobody")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = run(t, h, "done missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
