// Package holiday provides the read-only reference tables the conflict
// detector cross-references tasks against: public holidays and school
// breaks. Tables are built once and treated as immutable afterwards.
package holiday

import "time"

// Holiday is a single public holiday. Date carries midnight in the table's
// timezone; AffectsSchools marks days on which schools are closed.
type Holiday struct {
	Date           time.Time `json:"date"`
	Name           string    `json:"name"`
	AffectsSchools bool      `json:"affectsSchools"`
}

// SchoolBreak is a multi-day school closure such as a winter or summer
// break. From and To are inclusive calendar days.
type SchoolBreak struct {
	Name string    `json:"name"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether the instant falls on one of the break's days,
// evaluated in loc.
func (b SchoolBreak) Contains(instant time.Time, loc *time.Location) bool {
	day := instant.In(loc).Format(dayKeyLayout)
	return day >= b.From.In(loc).Format(dayKeyLayout) && day <= b.To.In(loc).Format(dayKeyLayout)
}

// Table is a date-indexed holiday lookup.
type Table struct {
	loc   *time.Location
	byDay map[string]Holiday
}

const dayKeyLayout = "2006-01-02"

// NewTable indexes the given holidays for by-day lookup in loc.
func NewTable(loc *time.Location, holidays []Holiday) *Table {
	t := &Table{
		loc:   loc,
		byDay: make(map[string]Holiday, len(holidays)),
	}
	for _, h := range holidays {
		t.byDay[h.Date.In(loc).Format(dayKeyLayout)] = h
	}
	return t
}

// On returns the holiday falling on the same calendar day as the given
// instant, evaluated in the table's timezone.
func (t *Table) On(instant time.Time) (Holiday, bool) {
	h, ok := t.byDay[instant.In(t.loc).Format(dayKeyLayout)]
	return h, ok
}
