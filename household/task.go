package household

import (
	"time"

	"github.com/samber/mo"
)

// Task is a household task occurrence as supplied by the task source.
// DueAt is optional: a task without one is an instantaneous reminder.
type Task struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	ChildIDs []string             `json:"childIds,omitempty"`
	StartAt  time.Time            `json:"startAt"`
	DueAt    mo.Option[time.Time] `json:"dueAt,omitempty"`
}

// Instant reports whether the task is a zero-length point in time.
func (t Task) Instant() bool {
	due, ok := t.DueAt.Get()
	return !ok || !due.After(t.StartAt)
}

// End returns the task's due instant, or its start for instantaneous tasks.
func (t Task) End() time.Time {
	if due, ok := t.DueAt.Get(); ok {
		return due
	}
	return t.StartAt
}

// Child identifies a household child. Name is only used to render
// human-readable conflict text.
type Child struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ChildCalendar is the external calendar snapshot for one child: school
// events (lessons, assemblies) plus SFO and AKS after-school sessions.
// Any of the lists may be empty or nil; absent data simply contributes no
// conflicts.
type ChildCalendar struct {
	Events      []Event `json:"events,omitempty"`
	SFOSessions []Event `json:"sfoActivities,omitempty"`
	AKSSessions []Event `json:"aksActivities,omitempty"`
}

// CareSessions returns the SFO and AKS sessions in one slice, SFO first.
func (c ChildCalendar) CareSessions() []Event {
	out := make([]Event, 0, len(c.SFOSessions)+len(c.AKSSessions))
	out = append(out, c.SFOSessions...)
	out = append(out, c.AKSSessions...)
	return out
}

// AllEvents returns every calendar event for the child, school events
// first.
func (c ChildCalendar) AllEvents() []Event {
	out := make([]Event, 0, len(c.Events)+len(c.SFOSessions)+len(c.AKSSessions))
	out = append(out, c.Events...)
	out = append(out, c.SFOSessions...)
	out = append(out, c.AKSSessions...)
	return out
}
