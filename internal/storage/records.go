package storage

import (
	"strings"
	"time"

	"github.com/sandeepkv93/teamcal/internal/model"
)

// Wire layout for persisted timestamps: UTC ISO-8601 with milliseconds.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type taskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	// AssignedMemberIDs is canonical. AssignedMemberID is written alongside
	// it for readers that only know the single-assignee shape.
	AssignedMemberIDs []string `json:"assignedMemberIds"`
	AssignedMemberID  *string  `json:"assignedMemberId"`
	Color             string   `json:"color"`
	Completed         bool     `json:"completed"`
}

type memberRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	Color  string `json:"color"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

// parseTime returns ok=false and a zero time when raw is not a recognisable
// date. Offset-less layouts are read in local time.
func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.Local(), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func newTaskRecord(t model.Task) taskRecord {
	ids := model.NormalizeAssignees(t.AssignedMemberIDs)
	if ids == nil {
		ids = []string{}
	}
	rec := taskRecord{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		StartTime:         formatTime(t.StartTime),
		EndTime:           formatTime(t.EndTime),
		AssignedMemberIDs: ids,
		Color:             t.Color,
		Completed:         t.Completed,
	}
	if len(ids) > 0 {
		first := ids[0]
		rec.AssignedMemberID = &first
	}
	return rec
}

// toTask upgrades legacy single-assignee records. The returned slice names
// the fields whose timestamps could not be parsed.
func (r taskRecord) toTask() (model.Task, []string) {
	var bad []string
	start, ok := parseTime(r.StartTime)
	if !ok {
		bad = append(bad, "startTime")
	}
	end, ok := parseTime(r.EndTime)
	if !ok {
		bad = append(bad, "endTime")
	}
	ids := r.AssignedMemberIDs
	if len(ids) == 0 && r.AssignedMemberID != nil {
		ids = []string{*r.AssignedMemberID}
	}
	return model.Task{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		StartTime:         start,
		EndTime:           end,
		AssignedMemberIDs: model.NormalizeAssignees(ids),
		Color:             r.Color,
		Completed:         r.Completed,
	}, bad
}

func newMemberRecord(m model.TeamMember) memberRecord {
	return memberRecord{ID: m.ID, Name: m.Name, Role: m.Role, Avatar: m.Avatar, Color: m.Color}
}

func (r memberRecord) toMember() model.TeamMember {
	return model.TeamMember{ID: r.ID, Name: r.Name, Role: r.Role, Avatar: r.Avatar, Color: r.Color}
}
