// Package conflict cross-references household task occurrences against
// external calendars and holiday tables and reports scheduling problems
// with suggested resolutions. Detection is a pure function of its inputs:
// identical snapshots always produce the identical ordered conflict list.
package conflict

import (
	"fmt"
	"time"

	"github.com/supergrahn/homecontrol/household"
)

// Type is the closed set of conflict classifications.
type Type string

const (
	TypeSchoolTaskOverlap Type = "school_task_overlap"
	TypeNorwegianHoliday  Type = "norwegian_holiday"
	TypeMultipleChildren  Type = "multiple_children"
	TypeSFOAKS            Type = "sfo_aks_conflict"
	TypeTravelTime        Type = "travel_time"
	TypeFamilyOverload    Type = "family_overload"
)

// Severity orders conflicts for presentation: low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Weight maps a severity onto its sort weight.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// ResolutionKind is the closed set of suggested-fix categories.
type ResolutionKind string

const (
	ResolutionReschedule ResolutionKind = "reschedule"
	ResolutionDelegate   ResolutionKind = "delegate"
	ResolutionCancel     ResolutionKind = "cancel"
	ResolutionModify     ResolutionKind = "modify"
	ResolutionAccept     ResolutionKind = "accept"
)

// Effort estimates how much work a resolution asks of the family.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Resolution is one suggested fix for a conflict. AutoApplicable is true
// only for pure time shifts that need no human choice.
type Resolution struct {
	Kind           ResolutionKind `json:"kind"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Effort         Effort         `json:"effort"`
	AutoApplicable bool           `json:"autoApplicable"`
}

// Conflict is one detected scheduling problem. Task and child references
// are stable identifiers, never live pointers into caller state, and
// Resolutions is never empty.
type Conflict struct {
	ID                string            `json:"id"`
	Type              Type              `json:"type"`
	Severity          Severity          `json:"severity"`
	Title             string            `json:"title"`
	AffectedTasks     []string          `json:"affectedTasks"`
	AffectedChildren  []string          `json:"affectedChildren"`
	ConflictingEvents []household.Event `json:"conflictingEvents"`
	Resolutions       []Resolution      `json:"resolutions"`
	DetectedAt        time.Time         `json:"detectedAt"`
}

// InvalidKind classifies which part of the input a ValidationError is about.
type InvalidKind string

const (
	InvalidTask    InvalidKind = "task"
	InvalidEvent   InvalidKind = "event"
	InvalidHorizon InvalidKind = "horizon"
)

// ValidationError reports structurally invalid detector input, such as a
// task due before it starts. It is raised before any detection pass runs;
// merely missing data never causes one.
type ValidationError struct {
	Kind    InvalidKind
	ID      string
	Message string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Message)
}
