package conflict

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/supergrahn/homecontrol/household"
)

// conflictNamespace seeds deterministic conflict IDs. Conflicts are derived
// as UUIDv5 over their identifying content, so repeated detection runs on
// identical snapshots produce identical IDs.
var conflictNamespace = uuid.MustParse("9f2c1d74-3b65-4c8a-9e57-28d41a6b0f13")

func conflictID(typ Type, parts ...string) string {
	name := string(typ) + "|" + strings.Join(parts, "|")
	return uuid.NewSHA1(conflictNamespace, []byte(name)).String()
}

// Detector runs the six detection passes over a household snapshot. It
// holds only immutable configuration; a single Detector is safe to share
// across goroutines.
type Detector struct {
	cfg Config
	loc *time.Location
}

// New builds a detector from a normalized copy of cfg.
func New(cfg Config) (*Detector, error) {
	cfg.Normalize()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	return &Detector{cfg: cfg, loc: loc}, nil
}

// Config returns the detector's normalized configuration.
func (d *Detector) Config() Config { return d.cfg }

// Detect validates the snapshot, runs every detection pass across the scan
// window and returns the conflicts sorted by severity weight descending.
// Ties keep pass-then-emission order, so output is deterministic for
// identical input. The now instant is stamped onto each conflict; Detect
// itself never reads the clock.
//
// Only structural invariant violations are errors. Missing calendars or
// empty holiday tables simply contribute no conflicts.
func (d *Detector) Detect(snap household.Snapshot, window household.Window, now time.Time) ([]Conflict, error) {
	if err := validate(snap, window); err != nil {
		return nil, err
	}
	window = d.clampWindow(window)

	var conflicts []Conflict
	conflicts = append(conflicts, d.schoolTaskOverlaps(snap, window, now)...)
	conflicts = append(conflicts, d.holidayCollisions(snap, window, now)...)
	conflicts = append(conflicts, d.multiChildCollisions(snap, window, now)...)
	conflicts = append(conflicts, d.careSessionOverlaps(snap, window, now)...)
	conflicts = append(conflicts, d.tightConnections(snap, window, now)...)
	conflicts = append(conflicts, d.overloadedWindows(snap, window, now)...)

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].Severity.Weight() > conflicts[j].Severity.Weight()
	})
	return conflicts, nil
}

// clampWindow clips the scan window to the configured maximum.
func (d *Detector) clampWindow(w household.Window) household.Window {
	if w.Duration() > d.cfg.MaxScanWindow() {
		w.End = w.Start.Add(d.cfg.MaxScanWindow())
	}
	return w
}

func validate(snap household.Snapshot, window household.Window) error {
	if window.End.Before(window.Start) {
		return &ValidationError{Kind: InvalidHorizon, Message: "window ends before it starts"}
	}
	for _, t := range snap.Tasks {
		if due, ok := t.DueAt.Get(); ok && due.Before(t.StartAt) {
			return &ValidationError{Kind: InvalidTask, ID: t.ID, Message: "due before start"}
		}
	}
	childIDs := make([]string, 0, len(snap.Calendars))
	for childID := range snap.Calendars {
		childIDs = append(childIDs, childID)
	}
	sort.Strings(childIDs)
	for _, childID := range childIDs {
		for _, ev := range snap.Calendars[childID].AllEvents() {
			if ev.End.Before(ev.Start) {
				return &ValidationError{
					Kind:    InvalidEvent,
					ID:      ev.ID,
					Message: fmt.Sprintf("ends before it starts (child %s)", childID),
				}
			}
		}
	}
	return nil
}
