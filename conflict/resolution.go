package conflict

import (
	"fmt"
	"time"

	"github.com/supergrahn/homecontrol/holiday"
	"github.com/supergrahn/homecontrol/household"
)

// Each conflict type carries a fixed, non-empty resolution template. Text
// is parameterized with the conflict's own data, but the set of resolution
// kinds per type never varies.

func schoolOverlapResolutions(task household.Task, ev household.Event) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionReschedule,
			Title:          "Move after school",
			Description:    fmt.Sprintf("Move %q to after %q ends at %s.", task.Title, ev.Title, ev.End.Format("15:04")),
			Effort:         EffortLow,
			AutoApplicable: true,
		},
		{
			Kind:           ResolutionReschedule,
			Title:          "Move to the weekend",
			Description:    fmt.Sprintf("Move %q to the coming Saturday at the same time.", task.Title),
			Effort:         EffortLow,
			AutoApplicable: true,
		},
	}
}

func holidayResolutions(task household.Task, h holiday.Holiday) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionReschedule,
			Title:          "Move to the next school day",
			Description:    fmt.Sprintf("Move %q off %s to the next regular school day.", task.Title, h.Name),
			Effort:         EffortLow,
			AutoApplicable: true,
		},
		{
			Kind:           ResolutionAccept,
			Title:          "Keep it on the holiday",
			Description:    fmt.Sprintf("%s may actually be a good day for %q since school is out.", h.Name, task.Title),
			Effort:         EffortLow,
			AutoApplicable: false,
		},
	}
}

func breakResolutions(task household.Task, b holiday.SchoolBreak) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionReschedule,
			Title:          "Move past the break",
			Description:    fmt.Sprintf("Move %q to after %s ends.", task.Title, b.Name),
			Effort:         EffortLow,
			AutoApplicable: true,
		},
		{
			Kind:           ResolutionAccept,
			Title:          "Keep it during the break",
			Description:    fmt.Sprintf("%s may leave room for %q since school is out.", b.Name, task.Title),
			Effort:         EffortLow,
			AutoApplicable: false,
		},
	}
}

func multiChildResolutions(a, b household.Task) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionModify,
			Title:          "Stagger the tasks",
			Description:    fmt.Sprintf("Pick a new time for %q or %q so they no longer coincide.", a.Title, b.Title),
			Effort:         EffortMedium,
			AutoApplicable: false,
		},
		{
			Kind:           ResolutionDelegate,
			Title:          "Split between caregivers",
			Description:    fmt.Sprintf("Have one adult take %q while another takes %q.", a.Title, b.Title),
			Effort:         EffortMedium,
			AutoApplicable: false,
		},
	}
}

func careSessionResolutions(task household.Task, ev household.Event) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionReschedule,
			Title:          fmt.Sprintf("Move after %s", ev.Kind),
			Description:    fmt.Sprintf("Move %q to after the session ends at %s.", task.Title, ev.End.Format("15:04")),
			Effort:         EffortLow,
			AutoApplicable: true,
		},
		{
			Kind:           ResolutionDelegate,
			Title:          "Hand over to another caregiver",
			Description:    fmt.Sprintf("Ask another adult to handle %q during %q.", task.Title, ev.Title),
			Effort:         EffortMedium,
			AutoApplicable: false,
		},
	}
}

func travelTimeResolutions(task household.Task, ev household.Event, minGap time.Duration) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionReschedule,
			Title:          fmt.Sprintf("Start %d minutes later", int(minGap.Minutes())),
			Description:    fmt.Sprintf("Push %q to %s to leave room for travel after %q.", task.Title, ev.End.Add(minGap).Format("15:04"), ev.Title),
			Effort:         EffortLow,
			AutoApplicable: true,
		},
		{
			Kind:           ResolutionAccept,
			Title:          "Keep the tight connection",
			Description:    "Keep the schedule as is if the locations are close together.",
			Effort:         EffortLow,
			AutoApplicable: false,
		},
	}
}

func overloadResolutions(peak, maxConcurrent int) []Resolution {
	return []Resolution{
		{
			Kind:           ResolutionModify,
			Title:          "Spread the load",
			Description:    fmt.Sprintf("Reschedule tasks so no more than %d commitments run at once (currently %d).", maxConcurrent, peak),
			Effort:         EffortHigh,
			AutoApplicable: false,
		},
		{
			Kind:           ResolutionDelegate,
			Title:          "Bring in another adult",
			Description:    "Delegate some of the overlapping commitments to another caregiver.",
			Effort:         EffortMedium,
			AutoApplicable: false,
		},
		{
			Kind:           ResolutionCancel,
			Title:          "Drop the least important task",
			Description:    "Cancel or postpone the lowest-priority commitment in the window.",
			Effort:         EffortLow,
			AutoApplicable: false,
		},
	}
}
