package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/store"
)

// Bind wires every command to s. Input is validated here, before it reaches
// the store. onGoto, when set, runs after the focus date changes.
func Bind(s *store.Store, onGoto func(time.Time)) Handlers {
	return Handlers{
		Add: func(ctx context.Context, a AddArgs) (Result, error) {
			t := model.Task{Title: a.Title, StartTime: a.Start, EndTime: a.End, Color: model.RandomColor()}
			if err := t.Validate(); err != nil {
				return Result{}, err
			}
			created, err := s.AddTask(ctx, t)
			return Result{Message: fmt.Sprintf("added %s (%s)", created.Title, created.ID)}, err
		},
		Member: func(ctx context.Context, a MemberArgs) (Result, error) {
			m := model.TeamMember{Name: a.Name, Role: a.Role, Color: model.RandomColor()}
			if err := m.Validate(); err != nil {
				return Result{}, err
			}
			created, err := s.AddTeamMember(ctx, m)
			return Result{Message: fmt.Sprintf("added member %s (%s)", created.Name, created.ID)}, err
		},
		Assign: func(ctx context.Context, a AssignArgs) (Result, error) {
			member, ok := s.TeamMember(a.MemberID)
			if !ok {
				return Result{}, fmt.Errorf("%w: member %s", store.ErrNotFound, a.MemberID)
			}
			task, ok := s.Task(a.TaskID)
			if !ok {
				return Result{}, fmt.Errorf("%w: task %s", store.ErrNotFound, a.TaskID)
			}
			ids := append(task.AssignedMemberIDs, member.ID)
			updated, err := s.UpdateTask(ctx, task.ID, model.TaskPatch{AssignedMemberIDs: &ids})
			return Result{Message: fmt.Sprintf("assigned %s to %s", member.Name, updated.Title)}, err
		},
		Unassign: func(ctx context.Context, a TargetArgs) (Result, error) {
			updated, err := s.UpdateTask(ctx, a.ID, model.TaskPatch{AssignedMemberIDs: model.Ptr([]string{})})
			return Result{Message: fmt.Sprintf("unassigned %s", updated.Title)}, err
		},
		Done: func(ctx context.Context, a TargetArgs) (Result, error) {
			updated, err := s.UpdateTask(ctx, a.ID, model.TaskPatch{Completed: model.Ptr(true)})
			return Result{Message: fmt.Sprintf("completed %s", updated.Title)}, err
		},
		Delete: func(ctx context.Context, a TargetArgs) (Result, error) {
			return Result{Message: "deleted task " + a.ID}, s.DeleteTask(ctx, a.ID)
		},
		Drop: func(ctx context.Context, a TargetArgs) (Result, error) {
			return Result{Message: "removed member " + a.ID}, s.DeleteTeamMember(ctx, a.ID)
		},
		Edit: func(ctx context.Context, a EditArgs) (Result, error) {
			patch := model.TaskPatch{Title: a.Title, Description: a.Description, Color: a.Color}
			return updateTask(ctx, s, a.TaskID, patch, "edited")
		},
		Move: func(ctx context.Context, a MoveArgs) (Result, error) {
			patch := model.TaskPatch{StartTime: &a.Start, EndTime: &a.End}
			return updateTask(ctx, s, a.TaskID, patch, "moved")
		},
		Rename: func(ctx context.Context, a RenameArgs) (Result, error) {
			current, ok := s.TeamMember(a.MemberID)
			if !ok {
				return Result{}, fmt.Errorf("%w: member %s", store.ErrNotFound, a.MemberID)
			}
			patch := model.MemberPatch{Name: a.Name, Role: a.Role, Color: a.Color}
			if err := patch.Apply(current).Validate(); err != nil {
				return Result{}, err
			}
			updated, err := s.UpdateTeamMember(ctx, a.MemberID, patch)
			return Result{Message: fmt.Sprintf("updated member %s (%s)", updated.Name, updated.ID)}, err
		},
		Goto: func(_ context.Context, a GotoArgs) (Result, error) {
			s.SetFocusDate(a.Date)
			if onGoto != nil {
				onGoto(a.Date)
			}
			return Result{Message: "focus " + a.Date.Format("2006-01-02")}, nil
		},
	}
}

// updateTask validates the patched record before the store sees the patch.
func updateTask(ctx context.Context, s *store.Store, id string, patch model.TaskPatch, verb string) (Result, error) {
	current, ok := s.Task(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	if err := patch.Apply(current).Validate(); err != nil {
		return Result{}, err
	}
	updated, err := s.UpdateTask(ctx, id, patch)
	return Result{Message: fmt.Sprintf("%s %s (%s)", verb, updated.Title, updated.ID)}, err
}
