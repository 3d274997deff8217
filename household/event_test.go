package household

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supergrahn/homecontrol/holiday"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 9, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"clear overlap", ts(8, 0), ts(10, 0), ts(9, 0), ts(11, 0), true},
		{"contained", ts(8, 0), ts(12, 0), ts(9, 0), ts(10, 0), true},
		{"identical", ts(8, 0), ts(10, 0), ts(8, 0), ts(10, 0), true},
		{"touching endpoints do not overlap", ts(8, 0), ts(10, 0), ts(10, 0), ts(12, 0), false},
		{"disjoint", ts(8, 0), ts(9, 0), ts(10, 0), ts(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestEventInstant(t *testing.T) {
	assert.True(t, Event{Start: ts(8, 0), End: ts(8, 0)}.Instant())
	assert.False(t, Event{Start: ts(8, 0), End: ts(9, 0)}.Instant())

	// An instantaneous event never truly overlaps an interval.
	point := Event{Start: ts(9, 0), End: ts(9, 0)}
	span := Event{Start: ts(8, 0), End: ts(10, 0)}
	assert.False(t, point.Overlaps(span))
	assert.False(t, span.Overlaps(point))
}

func TestEventActiveAt(t *testing.T) {
	span := Event{Start: ts(8, 0), End: ts(10, 0)}
	assert.True(t, span.ActiveAt(ts(8, 0), time.Hour))
	assert.True(t, span.ActiveAt(ts(9, 30), time.Hour))
	assert.False(t, span.ActiveAt(ts(10, 0), time.Hour))
	assert.False(t, span.ActiveAt(ts(7, 0), time.Hour))

	// Instants belong to their sampling bucket.
	point := Event{Start: ts(9, 30), End: ts(9, 30)}
	assert.True(t, point.ActiveAt(ts(9, 0), time.Hour))
	assert.False(t, point.ActiveAt(ts(10, 0), time.Hour))
	assert.False(t, point.ActiveAt(ts(8, 0), time.Hour))
}

func TestTaskShape(t *testing.T) {
	timed := Task{ID: "t1", StartAt: ts(8, 0), DueAt: mo.Some(ts(9, 0))}
	assert.False(t, timed.Instant())
	assert.Equal(t, ts(9, 0), timed.End())

	reminder := Task{ID: "t2", StartAt: ts(8, 0), DueAt: mo.None[time.Time]()}
	assert.True(t, reminder.Instant())
	assert.Equal(t, ts(8, 0), reminder.End())
}

func TestTaskEventNormalization(t *testing.T) {
	task := Task{
		ID:       "t1",
		Title:    "Pack gym bag",
		ChildIDs: []string{"c1"},
		StartAt:  ts(8, 0),
		DueAt:    mo.Some(ts(8, 30)),
	}
	ev := TaskEvent(task)
	assert.Equal(t, KindTask, ev.Kind)
	assert.Equal(t, task.ID, ev.ID)
	assert.Equal(t, task.StartAt, ev.Start)
	assert.Equal(t, ts(8, 30), ev.End)
	assert.Equal(t, []string{"c1"}, ev.ChildIDs)
}

func TestHolidayAndBreakNormalization(t *testing.T) {
	day := time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)
	hev := HolidayEvent(holiday.Holiday{Date: day, Name: "Grunnlovsdagen", AffectsSchools: true})
	assert.Equal(t, KindHoliday, hev.Kind)
	assert.Equal(t, day, hev.Start)
	assert.Equal(t, day.AddDate(0, 0, 1), hev.End)

	bev := BreakEvent(holiday.SchoolBreak{
		Name: "Vinterferie",
		From: time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, KindSchoolBreak, bev.Kind)
	// Break events span the inclusive day range.
	assert.Equal(t, time.Date(2025, 2, 22, 0, 0, 0, 0, time.UTC), bev.End)
}

func TestSnapshotScheduledEvents(t *testing.T) {
	snap := Snapshot{
		Tasks: []Task{
			{ID: "t1", StartAt: ts(8, 0), DueAt: mo.Some(ts(9, 0))},
		},
		Children: []Child{{ID: "c1", Name: "Ola"}},
		Calendars: map[string]ChildCalendar{
			"c1": {
				Events:      []Event{{ID: "l1", Kind: KindLesson, Start: ts(8, 15), End: ts(9, 0)}},
				SFOSessions: []Event{{ID: "s1", Kind: KindSFO, Start: ts(13, 0), End: ts(16, 0)}},
			},
			"ghost": {
				Events: []Event{{ID: "x1", Kind: KindLesson, Start: ts(8, 0), End: ts(9, 0)}},
			},
		},
		Holidays: holiday.Norwegian(2025, time.UTC),
	}

	events := snap.ScheduledEvents()
	require.Len(t, events, 3, "unknown children and holidays contribute nothing")

	assert.Equal(t, KindTask, events[0].Kind)
	assert.Equal(t, "l1", events[1].ID)
	// Calendar events inherit the child binding when the feed had none.
	assert.Equal(t, []string{"c1"}, events[1].ChildIDs)
	assert.Equal(t, "s1", events[2].ID)
}

func TestSnapshotChildName(t *testing.T) {
	snap := Snapshot{Children: []Child{{ID: "c1", Name: "Kari"}, {ID: "c2"}}}
	assert.Equal(t, "Kari", snap.ChildName("c1"))
	assert.Equal(t, "c2", snap.ChildName("c2"))
	assert.Equal(t, "nobody", snap.ChildName("nobody"))
}
