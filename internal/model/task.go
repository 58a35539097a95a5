package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrTitleRequired    = errors.New("model: task title is required")
	ErrNameRequired     = errors.New("model: member name is required")
	ErrInvalidTimeRange = errors.New("model: task ends before it starts")
	ErrInvalidViewMode  = errors.New("model: invalid view mode")
)

type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

func (v ViewMode) IsValid() bool {
	switch v {
	case ViewMonth, ViewWeek, ViewDay:
		return true
	default:
		return false
	}
}

func ParseViewMode(s string) (ViewMode, error) {
	v := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return v, nil
}

// Task is a titled time range on the calendar. AssignedMemberIDs is the
// canonical assignment set; legacy single-assignee records are upgraded when
// they are loaded.
type Task struct {
	ID                string
	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	AssignedMemberIDs []string
	Color             string
	Completed         bool
}

// Validate is the boundary check run before a task reaches the store.
// Zero-length tasks are accepted.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if t.StartTime.IsZero() || t.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
	}
	if t.EndTime.Before(t.StartTime) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidTimeRange, t.StartTime.Format(time.RFC3339), t.EndTime.Format(time.RFC3339))
	}
	return nil
}

func (t Task) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

func (t Task) IsAssignedTo(memberID string) bool {
	return memberID != "" && slices.Contains(t.AssignedMemberIDs, memberID)
}

// PrimaryAssignee is the first assignee, or "" when the task is unassigned.
func (t Task) PrimaryAssignee() string {
	if len(t.AssignedMemberIDs) == 0 {
		return ""
	}
	return t.AssignedMemberIDs[0]
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	out := t
	if t.AssignedMemberIDs != nil {
		out.AssignedMemberIDs = slices.Clone(t.AssignedMemberIDs)
	}
	return out
}

// TaskPatch carries a partial update. Nil fields keep their current value.
type TaskPatch struct {
	Title             *string
	Description       *string
	StartTime         *time.Time
	EndTime           *time.Time
	AssignedMemberIDs *[]string
	Color             *string
	Completed         *bool
}

func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}
	if p.AssignedMemberIDs != nil {
		out.AssignedMemberIDs = NormalizeAssignees(*p.AssignedMemberIDs)
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	return out
}

// NormalizeAssignees drops blanks and duplicates while keeping order.
func NormalizeAssignees(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Ptr is a helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
