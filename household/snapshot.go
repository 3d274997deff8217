package household

import (
	"time"

	"github.com/supergrahn/homecontrol/holiday"
)

// Snapshot is everything the conflict detector sees for one run: the
// household's tasks and children, the per-child external calendars and the
// holiday/break reference data. A snapshot is read-only input; detection
// never mutates it.
type Snapshot struct {
	Tasks     []Task                   `json:"tasks"`
	Children  []Child                  `json:"children"`
	Calendars map[string]ChildCalendar `json:"calendars,omitempty"`
	Holidays  []holiday.Holiday        `json:"holidays,omitempty"`
	Breaks    []holiday.SchoolBreak    `json:"breaks,omitempty"`
}

// CalendarFor returns the calendar snapshot for a child. A missing calendar
// is reported as an empty one, not an error.
func (s Snapshot) CalendarFor(childID string) (ChildCalendar, bool) {
	cal, ok := s.Calendars[childID]
	return cal, ok
}

// ChildName resolves a child ID to its display name, falling back to the ID
// when the child is unknown.
func (s Snapshot) ChildName(childID string) string {
	for _, c := range s.Children {
		if c.ID == childID && c.Name != "" {
			return c.Name
		}
	}
	return childID
}

// TaskEvent normalizes a task into a candidate event. Instantaneous tasks
// become zero-length events.
func TaskEvent(t Task) Event {
	return Event{
		ID:       t.ID,
		Title:    t.Title,
		Kind:     KindTask,
		Start:    t.StartAt,
		End:      t.End(),
		ChildIDs: t.ChildIDs,
	}
}

// HolidayEvent normalizes a holiday into an all-day candidate event.
func HolidayEvent(h holiday.Holiday) Event {
	return Event{
		ID:    "holiday/" + h.Date.Format("2006-01-02"),
		Title: h.Name,
		Kind:  KindHoliday,
		Start: h.Date,
		End:   h.Date.AddDate(0, 0, 1),
	}
}

// BreakEvent normalizes a school break into a candidate event spanning its
// inclusive day range.
func BreakEvent(b holiday.SchoolBreak) Event {
	return Event{
		ID:    "break/" + b.From.Format("2006-01-02"),
		Title: b.Name,
		Kind:  KindSchoolBreak,
		Start: b.From,
		End:   b.To.AddDate(0, 0, 1),
	}
}

// ScheduledEvents returns the events that occupy household members' time:
// normalized tasks plus every child's calendar events, in deterministic
// order (tasks, then children sorted by the Children list, then any
// calendars for unknown children are skipped). Holiday and break events are
// excluded; they describe days, not commitments.
func (s Snapshot) ScheduledEvents() []Event {
	out := make([]Event, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out = append(out, TaskEvent(t))
	}
	for _, c := range s.Children {
		cal, ok := s.Calendars[c.ID]
		if !ok {
			continue
		}
		for _, ev := range cal.AllEvents() {
			if len(ev.ChildIDs) == 0 {
				ev.ChildIDs = []string{c.ID}
			}
			out = append(out, ev)
		}
	}
	return out
}

// Window is a bounded half-open [Start, End) scan range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the window's length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
