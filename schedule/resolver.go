package schedule

import "time"

// NextOccurrence resolves the earliest occurrence strictly after the
// reference instant. It is a pure function: the reference is the only
// notion of "now" it consults. One-shot schedules yield their anchor when
// it is still in the future and None otherwise; recurring schedules honor
// UNTIL (inclusive) and COUNT bounds.
func (s RecurringSchedule) NextOccurrence(reference time.Time) OccurrenceResult {
	if s.rule == nil {
		if s.anchor.After(reference) {
			return s.occurrenceResult(s.anchor)
		}
		return noOccurrence()
	}

	n := s.nextIndexAfter(reference)
	if count, ok := s.rule.Count.Get(); ok && n >= count {
		return noOccurrence()
	}
	occ := s.occurrenceAt(n)
	if until, ok := s.rule.Until.Get(); ok && occ.After(until) {
		return noOccurrence()
	}
	return s.occurrenceResult(occ)
}

// occurrenceAt computes the nth occurrence (the anchor is occurrence 0)
// with civil-calendar field arithmetic in the schedule's location, so the
// local wall-clock time of day survives DST transitions.
func (s RecurringSchedule) occurrenceAt(n int) time.Time {
	a := s.anchor
	steps := n * s.rule.Interval

	var years, months, days int
	switch s.rule.Freq {
	case FreqDaily:
		days = steps
	case FreqWeekly:
		days = steps * 7
	case FreqMonthly:
		months = steps
	case FreqYearly:
		years = steps
	}

	return time.Date(
		a.Year()+years, a.Month()+time.Month(months), a.Day()+days,
		a.Hour(), a.Minute(), a.Second(), a.Nanosecond(),
		s.loc,
	)
}

// nextIndexAfter returns the smallest n >= 0 with occurrenceAt(n) strictly
// after the reference. The index is estimated in closed form by dividing
// the elapsed span by the nominal step and then corrected by a constant
// number of civil steps, so resolution cost does not grow with the distance
// between anchor and reference.
func (s RecurringSchedule) nextIndexAfter(reference time.Time) int {
	n := s.estimateIndex(reference)

	// The estimate can be off by a step or two where civil steps and fixed
	// durations disagree (DST days, short months, leap years).
	for n > 0 && s.occurrenceAt(n-1).After(reference) {
		n--
	}
	for !s.occurrenceAt(n).After(reference) {
		n++
	}
	return n
}

func (s RecurringSchedule) estimateIndex(reference time.Time) int {
	elapsed := reference.Sub(s.anchor)
	if elapsed < 0 {
		return 0
	}

	ref := reference.In(s.loc)
	var est int
	switch s.rule.Freq {
	case FreqDaily:
		est = int(elapsed/(24*time.Hour)) / s.rule.Interval
	case FreqWeekly:
		est = int(elapsed/(7*24*time.Hour)) / s.rule.Interval
	case FreqMonthly:
		months := (ref.Year()-s.anchor.Year())*12 + int(ref.Month()-s.anchor.Month())
		est = months / s.rule.Interval
	case FreqYearly:
		est = (ref.Year() - s.anchor.Year()) / s.rule.Interval
	}
	if est < 0 {
		est = 0
	}
	return est
}
