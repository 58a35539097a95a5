// Package store owns the task and team member collections. Every mutation is
// applied under a single lock and then written through the injected
// Persistence before the lock is released, so readers never see a member
// deletion with its task assignments only partly cleared.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/teamcal/internal/model"
)

var (
	ErrNotFound = errors.New("store: not found")
	// ErrNotPersisted means the change is live in memory but the save failed.
	ErrNotPersisted = errors.New("store: change applied but not persisted")
)

// Persistence loads the collections once at startup and saves each of them
// in full after every change. Loads never fail; they fall back to empty values.
type Persistence interface {
	LoadTasks(ctx context.Context) []model.Task
	LoadTeamMembers(ctx context.Context) []model.TeamMember
	LoadDarkMode(ctx context.Context) bool
	SaveTasks(ctx context.Context, tasks []model.Task) error
	SaveTeamMembers(ctx context.Context, members []model.TeamMember) error
	SaveDarkMode(ctx context.Context, dark bool) error
	Clear(ctx context.Context) error
}

type Store struct {
	mu       sync.RWMutex
	tasks    []model.Task
	members  []model.TeamMember
	darkMode bool
	focus    time.Time
	view     model.ViewMode

	persist Persistence
	ids     *IDGenerator
	logger  log.FieldLogger
	now     func() time.Time
}

type Option func(*Store)

func WithLogger(l log.FieldLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithIDGenerator(g *IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithViewMode(v model.ViewMode) Option {
	return func(s *Store) {
		if v.IsValid() {
			s.view = v
		}
	}
}

// Open hydrates a store from p. A nil p gives a purely in-memory store.
func Open(ctx context.Context, p Persistence, opts ...Option) *Store {
	s := &Store{
		persist: p,
		ids:     NewIDGenerator(),
		logger:  log.StandardLogger(),
		now:     time.Now,
		view:    model.ViewMonth,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.focus = s.now()
	if p != nil {
		s.tasks = p.LoadTasks(ctx)
		s.members = p.LoadTeamMembers(ctx)
		s.darkMode = p.LoadDarkMode(ctx)
	}
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	if s.members == nil {
		s.members = []model.TeamMember{}
	}
	s.logger.WithFields(log.Fields{"tasks": len(s.tasks), "members": len(s.members), "dark_mode": s.darkMode}).Debug("store hydrated")
	return s
}

func (s *Store) AddTask(ctx context.Context, in model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := in.Clone()
	task.ID = s.ids.Next(s.hasTaskID)
	task.AssignedMemberIDs = model.NormalizeAssignees(task.AssignedMemberIDs)
	s.tasks = append(s.tasks, task)
	s.logger.WithFields(log.Fields{"task": task.ID, "title": task.Title}).Debug("task added")
	return task.Clone(), s.saveTasksLocked(ctx)
}

// UpdateTask merges patch into the task with the given id. An unknown id
// leaves the state untouched and returns ErrNotFound.
func (s *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	s.tasks[i] = patch.Apply(s.tasks[i])
	s.logger.WithField("task", id).Debug("task updated")
	return s.tasks[i].Clone(), s.saveTasksLocked(ctx)
}

// DeleteTask removes the task. Deleting an unknown id changes nothing and
// returns ErrNotFound, so repeated deletes converge on the same state.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.logger.WithField("task", id).Debug("task deleted")
	return s.saveTasksLocked(ctx)
}

func (s *Store) AddTeamMember(ctx context.Context, in model.TeamMember) (model.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := in
	member.ID = s.ids.Next(s.hasMemberID)
	s.members = append(s.members, member)
	s.logger.WithFields(log.Fields{"member": member.ID, "name": member.Name}).Debug("member added")
	return member, s.saveMembersLocked(ctx)
}

func (s *Store) UpdateTeamMember(ctx context.Context, id string, patch model.MemberPatch) (model.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.memberIndex(id)
	if i < 0 {
		return model.TeamMember{}, fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	s.members[i] = patch.Apply(s.members[i])
	s.logger.WithField("member", id).Debug("member updated")
	return s.members[i], s.saveMembersLocked(ctx)
}

// DeleteTeamMember removes the member and clears it from every task's
// assignment set in the same critical section.
func (s *Store) DeleteTeamMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.memberIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	s.members = slices.Delete(s.members, i, i+1)

	cleared := 0
	for j := range s.tasks {
		if !s.tasks[j].IsAssignedTo(id) {
			continue
		}
		s.tasks[j].AssignedMemberIDs = slices.DeleteFunc(slices.Clone(s.tasks[j].AssignedMemberIDs), func(v string) bool {
			return v == id
		})
		cleared++
	}
	s.logger.WithFields(log.Fields{"member": id, "unassigned_tasks": cleared}).Debug("member deleted")

	return errors.Join(s.saveMembersLocked(ctx), s.saveTasksLocked(ctx))
}

func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = dark
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveDarkMode(ctx, dark); err != nil {
		return s.persistFailed("dark_mode", err)
	}
	return nil
}

// Clear drops every task and member and removes the persisted records.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []model.Task{}
	s.members = []model.TeamMember{}
	s.darkMode = false
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Clear(ctx); err != nil {
		return s.persistFailed("clear", err)
	}
	return nil
}

func (s *Store) SetFocusDate(t time.Time) {
	s.mu.Lock()
	s.focus = t
	s.mu.Unlock()
}

func (s *Store) SetViewMode(v model.ViewMode) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidViewMode, v)
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) TeamMembers() []model.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.members)
}

func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

func (s *Store) TeamMember(id string) (model.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.memberIndex(id); i >= 0 {
		return s.members[i], true
	}
	return model.TeamMember{}, false
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

func (s *Store) FocusDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focus
}

func (s *Store) ViewMode() model.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) memberIndex(id string) int {
	return slices.IndexFunc(s.members, func(m model.TeamMember) bool { return m.ID == id })
}

func (s *Store) hasTaskID(id string) bool {
	return s.taskIndex(id) >= 0
}

func (s *Store) hasMemberID(id string) bool {
	return s.memberIndex(id) >= 0
}

func (s *Store) saveTasksLocked(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveTasks(ctx, s.tasks); err != nil {
		return s.persistFailed("tasks", err)
	}
	return nil
}

func (s *Store) saveMembersLocked(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveTeamMembers(ctx, s.members); err != nil {
		return s.persistFailed("members", err)
	}
	return nil
}

func (s *Store) persistFailed(what string, err error) error {
	s.logger.WithError(err).WithField("collection", what).Error("persist failed")
	return fmt.Errorf("%w: save %s: %w", ErrNotPersisted, what, err)
}
