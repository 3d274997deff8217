package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Frequency is the base unit a recurrence rule steps by.
type Frequency string

const (
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

// untilLayout is the basic ISO-8601 UTC form used by UNTIL
// (same layout the RRULE wire format uses).
const untilLayout = "20060102T150405Z"

// ParseReason classifies why a recurrence expression was rejected.
type ParseReason string

const (
	ReasonMalformedPair    ParseReason = "malformed_pair"
	ReasonMissingFrequency ParseReason = "missing_frequency"
	ReasonUnknownFrequency ParseReason = "unknown_frequency"
	ReasonInvalidInterval  ParseReason = "invalid_interval"
	ReasonInvalidUntil     ParseReason = "invalid_until"
	ReasonInvalidCount     ParseReason = "invalid_count"
	ReasonConflictingBound ParseReason = "conflicting_bound"
)

// ParseError reports a malformed recurrence expression. It is returned at
// schedule construction time; a schedule that was built successfully can no
// longer fail to parse.
type ParseError struct {
	Expression string
	Reason     ParseReason
	Detail     string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse recurrence %q: %s: %s", e.Expression, e.Reason, e.Detail)
	}
	return fmt.Sprintf("parse recurrence %q: %s", e.Expression, e.Reason)
}

// Rule is the parsed form of a recurrence expression. At most one of Until
// and Count is set; Interval is always >= 1.
type Rule struct {
	Freq     Frequency
	Interval int
	Until    mo.Option[time.Time]
	Count    mo.Option[int]
}

// ParseRule parses a compact recurrence expression of ;-separated KEY=VALUE
// pairs, e.g. "FREQ=WEEKLY;INTERVAL=2;UNTIL=20250312T080000Z". Supported
// keys are FREQ (required), INTERVAL, UNTIL and COUNT; UNTIL and COUNT are
// mutually exclusive.
func ParseRule(expression string) (Rule, error) {
	rule := Rule{
		Interval: 1,
		Until:    mo.None[time.Time](),
		Count:    mo.None[int](),
	}
	fail := func(reason ParseReason, detail string) (Rule, error) {
		return Rule{}, &ParseError{Expression: expression, Reason: reason, Detail: detail}
	}

	seenFreq := false
	for _, pair := range strings.Split(expression, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			return fail(ReasonMalformedPair, pair)
		}

		switch strings.ToUpper(key) {
		case "FREQ":
			switch Frequency(strings.ToUpper(value)) {
			case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
				rule.Freq = Frequency(strings.ToUpper(value))
				seenFreq = true
			default:
				return fail(ReasonUnknownFrequency, value)
			}
		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fail(ReasonInvalidInterval, value)
			}
			rule.Interval = n
		case "UNTIL":
			u, err := time.Parse(untilLayout, value)
			if err != nil {
				return fail(ReasonInvalidUntil, value)
			}
			rule.Until = mo.Some(u)
		case "COUNT":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fail(ReasonInvalidCount, value)
			}
			rule.Count = mo.Some(n)
		default:
			return fail(ReasonMalformedPair, "unknown key "+key)
		}
	}

	if !seenFreq {
		return fail(ReasonMissingFrequency, "")
	}
	if rule.Until.IsPresent() && rule.Count.IsPresent() {
		return fail(ReasonConflictingBound, "UNTIL and COUNT are mutually exclusive")
	}

	return rule, nil
}

// String renders the rule back into the compact expression form.
func (r Rule) String() string {
	parts := []string{"FREQ=" + string(r.Freq)}
	if r.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if u, ok := r.Until.Get(); ok {
		parts = append(parts, "UNTIL="+u.UTC().Format(untilLayout))
	}
	if n, ok := r.Count.Get(); ok {
		parts = append(parts, "COUNT="+strconv.Itoa(n))
	}
	return strings.Join(parts, ";")
}
