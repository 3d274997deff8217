package household

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// icalMaxOccurrences caps per-event recurrence expansion so a malformed
// feed cannot blow up a sync.
const icalMaxOccurrences = 1000

// ReadChildCalendar decodes an iCalendar feed and normalizes its VEVENTs
// into a per-child calendar, expanding recurring events across the window.
// Components that cannot be interpreted are skipped rather than failing the
// whole feed; only an undecodable stream is an error.
func ReadChildCalendar(r io.Reader, childID string, window Window) (ChildCalendar, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return ChildCalendar{}, fmt.Errorf("decode calendar feed: %w", err)
	}
	return ChildCalendarFromICal(cal, childID, window), nil
}

// ChildCalendarFromICal maps an already-decoded iCalendar object into a
// ChildCalendar. Event classification (lesson, assembly, SFO, AKS) comes
// from the CATEGORIES property, falling back to summary keywords.
func ChildCalendarFromICal(cal *ical.Calendar, childID string, window Window) ChildCalendar {
	var out ChildCalendar

	for _, comp := range cal.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		start, end, ok := componentTimes(comp)
		if !ok {
			continue
		}

		uid := propValue(comp, ical.PropUID)
		title := propValue(comp, ical.PropSummary)
		kind := classifyComponent(comp)
		duration := end.Sub(start)

		for _, occStart := range componentOccurrences(comp, start, window) {
			ev := Event{
				ID:       uid + "/" + occStart.UTC().Format("20060102T150405Z"),
				Title:    title,
				Kind:     kind,
				Start:    occStart,
				End:      occStart.Add(duration),
				ChildIDs: []string{childID},
			}
			switch kind {
			case KindSFO:
				out.SFOSessions = append(out.SFOSessions, ev)
			case KindAKS:
				out.AKSSessions = append(out.AKSSessions, ev)
			default:
				out.Events = append(out.Events, ev)
			}
		}
	}

	return out
}

// componentOccurrences returns the start instants of a component inside the
// window: the master start for plain events, or the expanded RRULE
// occurrences minus EXDATEs for recurring ones.
func componentOccurrences(comp *ical.Component, masterStart time.Time, window Window) []time.Time {
	rruleStr := propValue(comp, ical.PropRecurrenceRule)
	if rruleStr == "" {
		if window.Contains(masterStart) {
			return []time.Time{masterStart}
		}
		return nil
	}

	starts, err := expandRRule(masterStart, rruleStr, window)
	if err != nil {
		// Unexpandable rule: degrade to the master occurrence.
		if window.Contains(masterStart) {
			return []time.Time{masterStart}
		}
		return nil
	}

	exdates := exceptionDates(comp)
	out := starts[:0]
	for _, s := range starts {
		if !isExcluded(s, exdates) {
			out = append(out, s)
		}
	}
	return out
}

// expandRRule expands an RRULE within the window.
func expandRRule(masterStart time.Time, rruleStr string, window Window) ([]time.Time, error) {
	dtstart := masterStart.UTC().Format("20060102T150405Z")
	fullRRule := fmt.Sprintf("DTSTART:%s\nRRULE:%s", dtstart, rruleStr)

	ruleSet, err := rrule.StrToRRuleSet(fullRRule)
	if err != nil {
		return nil, fmt.Errorf("parse RRULE %q: %w", rruleStr, err)
	}

	// Between is inclusive of the range start here; the window end stays
	// exclusive by backing off one nanosecond.
	occurrences := ruleSet.Between(window.Start, window.End.Add(-time.Nanosecond), true)
	if len(occurrences) > icalMaxOccurrences {
		occurrences = occurrences[:icalMaxOccurrences]
	}
	return occurrences, nil
}

// exceptionDates collects the EXDATE instants of a component.
func exceptionDates(comp *ical.Component) []time.Time {
	prop := comp.Props.Get(ical.PropExceptionDates)
	if prop == nil || prop.Value == "" {
		return nil
	}

	var exdates []time.Time
	for _, raw := range strings.Split(prop.Value, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if ex, err := time.Parse("20060102T150405Z", raw); err == nil {
			exdates = append(exdates, ex)
			continue
		}
		if ex, err := time.Parse("20060102", raw); err == nil {
			// Date-only exception, stored as midnight UTC.
			exdates = append(exdates, time.Date(ex.Year(), ex.Month(), ex.Day(), 0, 0, 0, 0, time.UTC))
		}
	}
	return exdates
}

// isExcluded checks an occurrence against the EXDATE list, honoring both
// exact timestamps and date-only exclusions.
func isExcluded(t time.Time, exdates []time.Time) bool {
	for _, exdate := range exdates {
		if t.Equal(exdate) {
			return true
		}
		if exdate.Hour() == 0 && exdate.Minute() == 0 && exdate.Second() == 0 && exdate.Location() == time.UTC {
			dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if dayStart.Equal(exdate) {
				return true
			}
		}
	}
	return false
}

// componentTimes extracts the master start and end of a component. Events
// without DTEND fall back to DURATION, then to a zero-length event.
func componentTimes(comp *ical.Component) (start, end time.Time, ok bool) {
	start, err := comp.Props.DateTime(ical.PropDateTimeStart, nil)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	if dtend, err := comp.Props.DateTime(ical.PropDateTimeEnd, nil); err == nil {
		return start, dtend, true
	}
	if durationProp := comp.Props.Get(ical.PropDuration); durationProp != nil {
		if duration, err := durationProp.Duration(); err == nil {
			return start, start.Add(duration), true
		}
	}
	return start, start, true
}

func classifyComponent(comp *ical.Component) SourceKind {
	categories := strings.ToUpper(propValue(comp, ical.PropCategories))
	summary := strings.ToUpper(propValue(comp, ical.PropSummary))

	switch {
	case strings.Contains(categories, "SFO") || strings.Contains(summary, "SFO"):
		return KindSFO
	case strings.Contains(categories, "AKS") || strings.Contains(summary, "AKS"):
		return KindAKS
	case strings.Contains(categories, "ASSEMBLY") ||
		strings.Contains(categories, "SAMLING") ||
		strings.Contains(summary, "SAMLING"):
		return KindAssembly
	default:
		return KindLesson
	}
}

func propValue(comp *ical.Component, name string) string {
	if prop := comp.Props.Get(name); prop != nil {
		return prop.Value
	}
	return ""
}
