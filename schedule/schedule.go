// Package schedule resolves recurring household schedules into concrete
// future occurrences. Schedules are immutable values validated at
// construction; resolution is a pure function of the schedule and an
// explicit reference instant.
package schedule

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// RecurringSchedule is an immutable recurrence anchored at a wall-clock
// instant in an IANA timezone. A schedule without a recurrence expression
// fires exactly once, at its anchor.
type RecurringSchedule struct {
	anchor     time.Time // in loc
	loc        *time.Location
	rule       *Rule // nil for a one-shot schedule
	prepWindow time.Duration
}

// New builds a schedule from an anchor instant, an IANA timezone identifier,
// an optional recurrence expression (empty string means one-shot) and a
// non-negative preparation window in hours. All validation happens here:
// a returned schedule can always be resolved without error.
func New(anchor time.Time, timezone string, expression string, prepWindowHours int) (RecurringSchedule, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return RecurringSchedule{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	if prepWindowHours < 0 {
		return RecurringSchedule{}, fmt.Errorf("prep window hours must be non-negative, got %d", prepWindowHours)
	}

	s := RecurringSchedule{
		anchor:     anchor.In(loc),
		loc:        loc,
		prepWindow: time.Duration(prepWindowHours) * time.Hour,
	}
	if expression != "" {
		rule, err := ParseRule(expression)
		if err != nil {
			return RecurringSchedule{}, err
		}
		s.rule = &rule
	}
	return s, nil
}

// Anchor returns the anchor instant in the schedule's timezone.
func (s RecurringSchedule) Anchor() time.Time { return s.anchor }

// Location returns the schedule's IANA timezone.
func (s RecurringSchedule) Location() *time.Location { return s.loc }

// PrepWindow returns the preparation lead time.
func (s RecurringSchedule) PrepWindow() time.Duration { return s.prepWindow }

// Rule returns the parsed recurrence rule, or None for a one-shot schedule.
func (s RecurringSchedule) Rule() mo.Option[Rule] {
	if s.rule == nil {
		return mo.None[Rule]()
	}
	return mo.Some(*s.rule)
}

// OccurrenceResult is the outcome of a single resolution query. Both fields
// are None when the schedule has no occurrence after the reference instant;
// otherwise PrepStartAt is OccurrenceAt minus the prep window. Instants are
// reported in UTC.
type OccurrenceResult struct {
	OccurrenceAt mo.Option[time.Time]
	PrepStartAt  mo.Option[time.Time]
}

func noOccurrence() OccurrenceResult {
	return OccurrenceResult{
		OccurrenceAt: mo.None[time.Time](),
		PrepStartAt:  mo.None[time.Time](),
	}
}

func (s RecurringSchedule) occurrenceResult(occ time.Time) OccurrenceResult {
	return OccurrenceResult{
		OccurrenceAt: mo.Some(occ.UTC()),
		PrepStartAt:  mo.Some(occ.Add(-s.prepWindow).UTC()),
	}
}
