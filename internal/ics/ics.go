// Package ics converts tasks to and from iCalendar. Fields with no standard
// VEVENT property travel as X-TEAMCAL-* extensions so a round trip through
// another calendar keeps colour, completion and assignees.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/teamcal/internal/model"
)

const (
	productID = "-//teamcal//teamcal//EN"

	propColor     = ical.ComponentProperty("X-TEAMCAL-COLOR")
	propCompleted = ical.ComponentProperty("X-TEAMCAL-COMPLETED")
	propAssignee  = ical.ComponentProperty("X-TEAMCAL-ASSIGNEE")
)

var ErrEmptyCalendar = errors.New("ics: empty calendar")

// Export renders one VEVENT per task. stamp becomes every event's DTSTAMP.
func Export(tasks []model.Task, members []model.TeamMember, stamp time.Time) string {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	for _, t := range tasks {
		ev := cal.AddEvent(t.ID)
		ev.SetDtStampTime(stamp)
		ev.SetSummary(t.Title)
		if t.Description != "" {
			ev.SetDescription(t.Description)
		}
		if !t.StartTime.IsZero() {
			ev.SetStartAt(t.StartTime)
		}
		if !t.EndTime.IsZero() {
			ev.SetEndAt(t.EndTime)
		}
		if t.Color != "" {
			ev.SetProperty(propColor, t.Color)
		}
		if t.Completed {
			ev.SetProperty(propCompleted, "TRUE")
		}
		for _, id := range t.AssignedMemberIDs {
			ev.AddProperty(propAssignee, id)
			if name, ok := names[id]; ok {
				ev.AddProperty(ical.ComponentPropertyAttendee, "urn:teamcal:member:"+id, ical.WithCN(name))
			}
		}
	}
	return cal.Serialize()
}

// Import reads VEVENTs back into tasks. Events without UID or DTSTART are
// skipped and logged; a missing DTEND gives a zero-length task.
func Import(r io.Reader, logger log.FieldLogger) ([]model.Task, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}
	events := cal.Events()
	if len(events) == 0 {
		return nil, ErrEmptyCalendar
	}

	tasks := make([]model.Task, 0, len(events))
	for _, ev := range events {
		t, perr := taskFromEvent(ev)
		if perr != nil {
			logger.WithError(perr).Warn("skipping calendar event")
			continue
		}
		tasks = append(tasks, t)
	}
	logger.WithField("count", len(tasks)).Debug("calendar imported")
	return tasks, nil
}

func taskFromEvent(ev *ical.VEvent) (model.Task, error) {
	var t model.Task
	uid := ev.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || strings.TrimSpace(uid.Value) == "" {
		return t, errors.New("missing UID")
	}
	t.ID = uid.Value

	start, err := ev.GetStartAt()
	if err != nil {
		return t, fmt.Errorf("event %s: missing DTSTART: %w", t.ID, err)
	}
	t.StartTime = start.Local()
	t.EndTime = t.StartTime
	if end, err := ev.GetEndAt(); err == nil {
		t.EndTime = end.Local()
	}

	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		t.Title = p.Value
	}
	if p := ev.GetProperty(ical.ComponentPropertyDescription); p != nil {
		t.Description = p.Value
	}
	if p := ev.GetProperty(propColor); p != nil {
		t.Color = p.Value
	}
	if p := ev.GetProperty(propCompleted); p != nil {
		t.Completed = strings.EqualFold(strings.TrimSpace(p.Value), "TRUE")
	}
	var assignees []string
	for _, p := range ev.GetProperties(propAssignee) {
		assignees = append(assignees, p.Value)
	}
	t.AssignedMemberIDs = model.NormalizeAssignees(assignees)
	return t, nil
}
