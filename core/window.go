package core

import (
	"fmt"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

// Rolling-window durations for the relative selectors. These are policy
// constants carried over from the original reporting cadence; changing them
// changes the meaning of every historical scorecard, so treat them as fixed.
const (
	currentPIDuration   = 5 * 7 * 24 * time.Hour
	lastPIDuration      = 10 * 7 * 24 * time.Hour
	lastQuarterDuration = 13 * 7 * 24 * time.Hour
	last6MonthsDuration = 180 * 24 * time.Hour
	lastYearDuration    = 365 * 24 * time.Hour
)

// WindowResolver maps a requested period to a concrete [start, end) range
// using the configured PI calendar, falling back to fixed-length rolling
// windows for the relative selectors.
type WindowResolver struct {
	windows []schema.PIWindow
	now     contract.Clock
}

// NewWindowResolver builds a resolver over an ordered PI calendar.
// Calendar order is resolution order when a date matches several windows.
func NewWindowResolver(windows []schema.PIWindow) *WindowResolver {
	return &WindowResolver{windows: windows, now: time.Now}
}

// Resolve maps a selector to a concrete time window. Relative selectors
// resolve to [now - duration, now); anything else is treated as a PI label
// and looked up in the calendar, yielding ErrWindowNotFound when absent.
func (r *WindowResolver) Resolve(selector string) (schema.TimeWindow, error) {
	now := r.now()

	var d time.Duration
	switch schema.WindowSelector(selector) {
	case schema.CurrentPISelector:
		d = currentPIDuration
	case schema.LastPISelector:
		d = lastPIDuration
	case schema.LastQuarterSelector:
		d = lastQuarterDuration
	case schema.Last6MonthsSelector:
		d = last6MonthsDuration
	case schema.LastYearSelector:
		d = lastYearDuration
	default:
		return r.resolveLabel(selector)
	}

	return schema.TimeWindow{Label: selector, Start: now.Add(-d), End: now}, nil
}

// resolveLabel looks up a PI by its exact label.
func (r *WindowResolver) resolveLabel(label string) (schema.TimeWindow, error) {
	for _, w := range r.windows {
		if w.Name == label {
			// PI ranges are inclusive calendar days; widen the end by one
			// day to express them as a half-open window.
			return schema.TimeWindow{
				Label: w.Name,
				Start: w.StartDate,
				End:   w.EndDate.AddDate(0, 0, 1),
			}, nil
		}
	}
	return schema.TimeWindow{}, fmt.Errorf("%w: PI %q is not in the configured calendar", ErrWindowNotFound, label)
}

// ResolveDate scans the calendar in configuration order and returns the
// first window whose inclusive [start, end] range contains d. The second
// return value distinguishes "no window configured for this date" from a
// match; callers must check it rather than using the zero window.
func (r *WindowResolver) ResolveDate(d time.Time) (schema.PIWindow, bool) {
	for _, w := range r.windows {
		if w.ContainsDate(d) {
			return w, true
		}
	}
	return schema.PIWindow{}, false
}
