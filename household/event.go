// Package household holds the shared data model of the scheduling core:
// tasks, children, per-child calendars and the normalized candidate events
// the conflict detector works on. Normalization into Event is the only
// place household tasks and external calendar data meet.
package household

import "time"

// SourceKind identifies where a candidate event came from.
type SourceKind string

const (
	KindTask        SourceKind = "TASK"
	KindLesson      SourceKind = "LESSON"
	KindAssembly    SourceKind = "ASSEMBLY"
	KindSFO         SourceKind = "SFO"
	KindAKS         SourceKind = "AKS"
	KindHoliday     SourceKind = "HOLIDAY"
	KindSchoolBreak SourceKind = "SCHOOL_BREAK"
)

// Event is the normalized shape every source is mapped into before conflict
// detection. End equals Start for instantaneous items such as reminders.
type Event struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Kind     SourceKind `json:"sourceKind"`
	Start    time.Time  `json:"start"`
	End      time.Time  `json:"end"`
	ChildIDs []string   `json:"childIds,omitempty"`
}

// Instant reports whether the event is a zero-length point in time.
func (e Event) Instant() bool { return !e.End.After(e.Start) }

// Overlaps reports half-open [start, end) interval intersection with o.
// Instantaneous events never truly overlap anything.
func (e Event) Overlaps(o Event) bool {
	return Overlaps(e.Start, e.End, o.Start, o.End)
}

// Overlaps is the half-open [start, end) intersection test used everywhere
// in the detector: a.start < b.end && b.start < a.end.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ActiveAt reports whether the event is running at the sample instant t.
// Instantaneous events are attributed to the sampling bucket [t, t+step).
func (e Event) ActiveAt(t time.Time, step time.Duration) bool {
	if e.Instant() {
		return !e.Start.Before(t) && e.Start.Before(t.Add(step))
	}
	return !e.Start.After(t) && t.Before(e.End)
}

// InWindow reports whether any part of the event falls inside the half-open
// window [start, end). Instantaneous events are in the window when their
// single instant is.
func (e Event) InWindow(start, end time.Time) bool {
	if e.Instant() {
		return !e.Start.Before(start) && e.Start.Before(end)
	}
	return Overlaps(e.Start, e.End, start, end)
}
