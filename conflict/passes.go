package conflict

import (
	"fmt"
	"strings"
	"time"

	"github.com/supergrahn/homecontrol/holiday"
	"github.com/supergrahn/homecontrol/household"
)

// eventGroup collects one calendar event together with every bound child it
// was found for, preserving first-seen order for deterministic output.
type eventGroup struct {
	event    household.Event
	children []string
}

// groupTaskEvents walks the task's bound children and collects, keyed by
// event ID, every event from pick's slice that the keep predicate accepts.
// Children without calendar data contribute nothing.
func groupTaskEvents(
	task household.Task,
	snap household.Snapshot,
	pick func(household.ChildCalendar) []household.Event,
	keep func(household.Event) bool,
) []eventGroup {
	var groups []eventGroup
	index := make(map[string]int)

	for _, childID := range task.ChildIDs {
		cal, ok := snap.CalendarFor(childID)
		if !ok {
			continue
		}
		for _, ev := range pick(cal) {
			if !keep(ev) {
				continue
			}
			if i, seen := index[ev.ID]; seen {
				groups[i].children = appendUnique(groups[i].children, childID)
				continue
			}
			index[ev.ID] = len(groups)
			groups = append(groups, eventGroup{event: ev, children: []string{childID}})
		}
	}
	return groups
}

// schoolTaskOverlaps finds tasks that collide with school lessons or
// assemblies of a bound child. Lessons weigh high, assemblies medium.
func (d *Detector) schoolTaskOverlaps(snap household.Snapshot, w household.Window, now time.Time) []Conflict {
	var out []Conflict
	for _, task := range snap.Tasks {
		if task.Instant() || !household.TaskEvent(task).InWindow(w.Start, w.End) {
			continue
		}
		groups := groupTaskEvents(task, snap,
			func(cal household.ChildCalendar) []household.Event { return cal.Events },
			func(ev household.Event) bool {
				return !ev.Instant() &&
					ev.InWindow(w.Start, w.End) &&
					household.Overlaps(task.StartAt, task.End(), ev.Start, ev.End)
			})

		for _, g := range groups {
			severity := SeverityHigh
			if g.event.Kind == household.KindAssembly {
				severity = SeverityMedium
			}
			out = append(out, Conflict{
				ID:                conflictID(TypeSchoolTaskOverlap, task.ID, g.event.ID),
				Type:              TypeSchoolTaskOverlap,
				Severity:          severity,
				Title:             fmt.Sprintf("%q collides with %q", task.Title, g.event.Title),
				AffectedTasks:     []string{task.ID},
				AffectedChildren:  g.children,
				ConflictingEvents: []household.Event{g.event},
				Resolutions:       schoolOverlapResolutions(task, g.event),
				DetectedAt:        now,
			})
		}
	}
	return out
}

// holidayCollisions flags tasks scheduled on a day schools are closed: a
// holiday with AffectsSchools, or a day inside a school break. A day that
// is both reports only the holiday.
func (d *Detector) holidayCollisions(snap household.Snapshot, w household.Window, now time.Time) []Conflict {
	if len(snap.Holidays) == 0 && len(snap.Breaks) == 0 {
		return nil
	}
	table := holiday.NewTable(d.loc, snap.Holidays)

	var out []Conflict
	for _, task := range snap.Tasks {
		if !household.TaskEvent(task).InWindow(w.Start, w.End) {
			continue
		}
		if h, ok := table.On(task.StartAt); ok {
			if !h.AffectsSchools {
				continue
			}
			out = append(out, Conflict{
				ID:                conflictID(TypeNorwegianHoliday, task.ID, h.Date.Format("2006-01-02")),
				Type:              TypeNorwegianHoliday,
				Severity:          SeverityMedium,
				Title:             fmt.Sprintf("%q falls on %s", task.Title, h.Name),
				AffectedTasks:     []string{task.ID},
				AffectedChildren:  task.ChildIDs,
				ConflictingEvents: []household.Event{household.HolidayEvent(h)},
				Resolutions:       holidayResolutions(task, h),
				DetectedAt:        now,
			})
			continue
		}
		for _, b := range snap.Breaks {
			if !b.Contains(task.StartAt, d.loc) {
				continue
			}
			out = append(out, Conflict{
				ID:                conflictID(TypeNorwegianHoliday, task.ID, "break", b.From.Format("2006-01-02")),
				Type:              TypeNorwegianHoliday,
				Severity:          SeverityMedium,
				Title:             fmt.Sprintf("%q falls in %s", task.Title, b.Name),
				AffectedTasks:     []string{task.ID},
				AffectedChildren:  task.ChildIDs,
				ConflictingEvents: []household.Event{household.BreakEvent(b)},
				Resolutions:       breakResolutions(task, b),
				DetectedAt:        now,
			})
			break
		}
	}
	return out
}

// multiChildCollisions finds pairs of tasks bound to different children
// that are scheduled on top of each other. Instantaneous tasks count when
// their instant coincides with the other task.
func (d *Detector) multiChildCollisions(snap household.Snapshot, w household.Window, now time.Time) []Conflict {
	var out []Conflict
	for i := range snap.Tasks {
		a := snap.Tasks[i]
		if !household.TaskEvent(a).InWindow(w.Start, w.End) {
			continue
		}
		for j := i + 1; j < len(snap.Tasks); j++ {
			b := snap.Tasks[j]
			if !household.TaskEvent(b).InWindow(w.Start, w.End) {
				continue
			}
			if !tasksCoincide(a, b) || !distinctChildren(a.ChildIDs, b.ChildIDs) {
				continue
			}
			out = append(out, Conflict{
				ID:       conflictID(TypeMultipleChildren, a.ID, b.ID),
				Type:     TypeMultipleChildren,
				Severity: SeverityHigh,
				Title: fmt.Sprintf("%q for %s and %q for %s are scheduled at the same time",
					a.Title, childNames(snap, a.ChildIDs), b.Title, childNames(snap, b.ChildIDs)),
				AffectedTasks:    []string{a.ID, b.ID},
				AffectedChildren: appendUnique(append([]string(nil), a.ChildIDs...), b.ChildIDs...),
				ConflictingEvents: []household.Event{
					household.TaskEvent(a),
					household.TaskEvent(b),
				},
				Resolutions: multiChildResolutions(a, b),
				DetectedAt:  now,
			})
		}
	}
	return out
}

// careSessionOverlaps finds tasks colliding with a bound child's SFO or AKS
// session.
func (d *Detector) careSessionOverlaps(snap household.Snapshot, w household.Window, now time.Time) []Conflict {
	var out []Conflict
	for _, task := range snap.Tasks {
		if task.Instant() || !household.TaskEvent(task).InWindow(w.Start, w.End) {
			continue
		}
		groups := groupTaskEvents(task, snap,
			household.ChildCalendar.CareSessions,
			func(ev household.Event) bool {
				return !ev.Instant() &&
					ev.InWindow(w.Start, w.End) &&
					household.Overlaps(task.StartAt, task.End(), ev.Start, ev.End)
			})

		for _, g := range groups {
			out = append(out, Conflict{
				ID:                conflictID(TypeSFOAKS, task.ID, g.event.ID),
				Type:              TypeSFOAKS,
				Severity:          SeverityMedium,
				Title:             fmt.Sprintf("%q collides with the %s session %q", task.Title, g.event.Kind, g.event.Title),
				AffectedTasks:     []string{task.ID},
				AffectedChildren:  g.children,
				ConflictingEvents: []household.Event{g.event},
				Resolutions:       careSessionResolutions(task, g.event),
				DetectedAt:        now,
			})
		}
	}
	return out
}

// tightConnections flags tasks that start too soon after a bound child's
// calendar event ends to allow for travel.
func (d *Detector) tightConnections(snap household.Snapshot, w household.Window, now time.Time) []Conflict {
	var out []Conflict
	for _, task := range snap.Tasks {
		if task.Instant() || !household.TaskEvent(task).InWindow(w.Start, w.End) {
			continue
		}
		groups := groupTaskEvents(task, snap,
			household.ChildCalendar.AllEvents,
			func(ev household.Event) bool {
				if ev.Instant() {
					return false
				}
				gap := task.StartAt.Sub(ev.End)
				return gap > 0 && gap < d.cfg.MinTravelGap()
			})

		for _, g := range groups {
			gap := task.StartAt.Sub(g.event.End)
			out = append(out, Conflict{
				ID:                conflictID(TypeTravelTime, task.ID, g.event.ID),
				Type:              TypeTravelTime,
				Severity:          SeverityLow,
				Title:             fmt.Sprintf("only %d minutes between %q and %q", int(gap.Minutes()), g.event.Title, task.Title),
				AffectedTasks:     []string{task.ID},
				AffectedChildren:  g.children,
				ConflictingEvents: []household.Event{g.event},
				Resolutions:       travelTimeResolutions(task, g.event, d.cfg.MinTravelGap()),
				DetectedAt:        now,
			})
		}
	}
	return out
}

// overloadedWindows samples household activity across the scan window at
// the configured granularity and reports each contiguous run of samples in
// which more tasks and events are active than the household can absorb.
func (d *Detector) overloadedWindows(snap household.Snapshot, w household.Window, now time.Time) []Conflict {
	events := snap.ScheduledEvents()
	if len(events) == 0 {
		return nil
	}
	step := d.cfg.OverloadGranularity()

	var out []Conflict
	var winStart, winEnd time.Time
	var winEvents []household.Event
	seen := make(map[string]bool)
	peak := 0
	open := false

	flush := func() {
		if open {
			out = append(out, d.overloadConflict(winStart, winEnd, peak, winEvents, now))
			open = false
		}
	}

	for t := w.Start; t.Before(w.End); t = t.Add(step) {
		count := 0
		var active []household.Event
		for _, ev := range events {
			if ev.ActiveAt(t, step) {
				count++
				active = append(active, ev)
			}
		}
		if count <= d.cfg.MaxConcurrent {
			flush()
			continue
		}
		if !open {
			open = true
			winStart = t
			winEvents = nil
			seen = make(map[string]bool)
			peak = 0
		}
		winEnd = t.Add(step)
		if count > peak {
			peak = count
		}
		for _, ev := range active {
			if !seen[ev.ID] {
				seen[ev.ID] = true
				winEvents = append(winEvents, ev)
			}
		}
	}
	flush()
	return out
}

func (d *Detector) overloadConflict(start, end time.Time, peak int, events []household.Event, now time.Time) Conflict {
	var tasks []string
	var children []string
	for _, ev := range events {
		if ev.Kind == household.KindTask {
			tasks = append(tasks, ev.ID)
		}
		children = appendUnique(children, ev.ChildIDs...)
	}
	return Conflict{
		ID:                conflictID(TypeFamilyOverload, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)),
		Type:              TypeFamilyOverload,
		Severity:          SeverityHigh,
		Title:             fmt.Sprintf("up to %d simultaneous commitments between %s and %s", peak, start.In(d.loc).Format("Mon 15:04"), end.In(d.loc).Format("Mon 15:04")),
		AffectedTasks:     tasks,
		AffectedChildren:  children,
		ConflictingEvents: events,
		Resolutions:       overloadResolutions(peak, d.cfg.MaxConcurrent),
		DetectedAt:        now,
	}
}

// tasksCoincide reports whether two tasks occupy the same moment, with
// instantaneous tasks matching when their instant falls inside (or exactly
// on) the other task.
func tasksCoincide(a, b household.Task) bool {
	ae, be := household.TaskEvent(a), household.TaskEvent(b)
	switch {
	case ae.Instant() && be.Instant():
		return ae.Start.Equal(be.Start)
	case ae.Instant():
		return !ae.Start.Before(be.Start) && ae.Start.Before(be.End)
	case be.Instant():
		return !be.Start.Before(ae.Start) && be.Start.Before(ae.End)
	default:
		return ae.Overlaps(be)
	}
}

// distinctChildren reports whether the two ID sets reference at least two
// different children between them.
func distinctChildren(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, x := range a {
		for _, y := range b {
			if x != y {
				return true
			}
		}
	}
	return false
}

// childNames renders the bound children for conflict titles, falling back
// to raw IDs for children missing from the roster.
func childNames(snap household.Snapshot, ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = snap.ChildName(id)
	}
	return strings.Join(names, " and ")
}

func appendUnique(dst []string, vals ...string) []string {
	for _, v := range vals {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
