package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/teamcal/internal/model"
)

const (
	TasksKey    = "calendar_tasks"
	MembersKey  = "calendar_members"
	DarkModeKey = "calendar_dark_mode"
)

// Adapter binds the task list, the member list and the dark-mode flag to
// fixed keys of a KV. Loads fail soft: a missing or unreadable value yields
// the empty default and a log line.
type Adapter struct {
	kv     KV
	logger log.FieldLogger
}

func NewAdapter(kv KV, logger log.FieldLogger) *Adapter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Adapter{kv: kv, logger: logger}
}

func (a *Adapter) LoadTasks(ctx context.Context) []model.Task {
	var records []taskRecord
	if !a.load(ctx, TasksKey, &records) {
		return []model.Task{}
	}
	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		task, bad := rec.toTask()
		if len(bad) > 0 {
			a.logger.WithFields(log.Fields{
				"task_id": rec.ID,
				"fields":  bad,
			}).Warn("task has unparseable timestamps")
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func (a *Adapter) LoadTeamMembers(ctx context.Context) []model.TeamMember {
	var records []memberRecord
	if !a.load(ctx, MembersKey, &records) {
		return []model.TeamMember{}
	}
	members := make([]model.TeamMember, 0, len(records))
	for _, rec := range records {
		members = append(members, rec.toMember())
	}
	return members
}

func (a *Adapter) LoadDarkMode(ctx context.Context) bool {
	var dark bool
	if !a.load(ctx, DarkModeKey, &dark) {
		return false
	}
	return dark
}

func (a *Adapter) SaveTasks(ctx context.Context, tasks []model.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, newTaskRecord(t))
	}
	return a.save(ctx, TasksKey, records)
}

func (a *Adapter) SaveTeamMembers(ctx context.Context, members []model.TeamMember) error {
	records := make([]memberRecord, 0, len(members))
	for _, m := range members {
		records = append(records, newMemberRecord(m))
	}
	return a.save(ctx, MembersKey, records)
}

func (a *Adapter) SaveDarkMode(ctx context.Context, dark bool) error {
	return a.save(ctx, DarkModeKey, dark)
}

// Clear removes all three keys.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.kv.Delete(ctx, TasksKey, MembersKey, DarkModeKey); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

func (a *Adapter) load(ctx context.Context, key string, dst any) bool {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		entry := a.logger.WithField("key", key)
		if errors.Is(err, ErrNotFound) {
			entry.Debug("no stored value")
		} else {
			entry.WithError(err).Warn("read failed, using default")
		}
		return false
	}
	if err := sonic.ConfigStd.Unmarshal(raw, dst); err != nil {
		a.logger.WithField("key", key).WithError(err).Warn("stored value is malformed, using default")
		return false
	}
	return true
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	payload, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
