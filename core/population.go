package core

import (
	"github.com/flowlens/flowlens/schema"
	"github.com/samber/lo"
)

// ScopeFilter selects records by art, team and PI. An empty axis means
// "no filter" on that axis. Matching is case-insensitive and
// whitespace-tolerant on both sides.
type ScopeFilter struct {
	ARTs  []string
	Teams []string
	PIs   []string
}

// IsZero reports whether no axis is constrained.
func (s ScopeFilter) IsZero() bool {
	return len(s.ARTs) == 0 && len(s.Teams) == 0 && len(s.PIs) == 0
}

// selectorSet folds a selector list into a normalized membership set.
func selectorSet(values []string) map[string]struct{} {
	return lo.SliceToMap(values, func(v string) (string, struct{}) {
		return schema.NormalizeScopeValue(v), struct{}{}
	})
}

// axisMatches reports whether value passes one selector axis.
func axisMatches(set map[string]struct{}, value string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[schema.NormalizeScopeValue(value)]
	return ok
}

// AnalysisOptions carries the per-request statistic policy. The aggregator
// and the stuck-item matcher both read it from the shared Population, so
// they can never disagree on it.
type AnalysisOptions struct {
	ThresholdDays    float64 // Stage duration above which an item counts as stuck
	IncludeCompleted bool    // Include terminal-status records in stage statistics
}

// Population is the filtered working set for one analysis request. It is
// built exactly once per request and passed to every downstream component;
// no component re-filters independently. Treat it as immutable after
// construction.
type Population struct {
	records []schema.IssueFlowRecord
	scope   ScopeFilter
	window  schema.TimeWindow
	opts    AnalysisOptions
}

// NewPopulation applies the scope filter and time window to the raw record
// collection. Records without a resolved date are in flight and stay in the
// population regardless of the window; resolved records must fall inside
// the half-open [start, end) range.
func NewPopulation(records []schema.IssueFlowRecord, scope ScopeFilter, window schema.TimeWindow, opts AnalysisOptions) *Population {
	arts := selectorSet(scope.ARTs)
	teams := selectorSet(scope.Teams)
	pis := selectorSet(scope.PIs)

	filtered := lo.Filter(records, func(r schema.IssueFlowRecord, _ int) bool {
		if !axisMatches(arts, r.ART) || !axisMatches(teams, r.Team) || !axisMatches(pis, r.PI) {
			return false
		}
		if window.Start.IsZero() && window.End.IsZero() {
			return true
		}
		if r.ResolvedDate.IsZero() {
			return true
		}
		return window.Contains(r.ResolvedDate)
	})

	return &Population{
		records: filtered,
		scope:   scope,
		window:  window,
		opts:    opts,
	}
}

// Records exposes the filtered working set. Callers must not mutate it.
func (p *Population) Records() []schema.IssueFlowRecord {
	return p.records
}

// Len returns the size of the filtered working set.
func (p *Population) Len() int {
	return len(p.records)
}

// Options returns the shared statistic policy for this request.
func (p *Population) Options() AnalysisOptions {
	return p.opts
}

// Window returns the resolved analysis window.
func (p *Population) Window() schema.TimeWindow {
	return p.window
}

// stageRecords selects the records that count toward statistics for one
// stage: terminal-status records only when IncludeCompleted is set, and
// only records that actually visited the stage. A zero duration means the
// item never entered the stage and is excluded, not counted as zero. The
// same selection backs both the aggregator and the stuck-item matcher, so
// a reported max always has a matching item.
func (p *Population) stageRecords(stage string) []schema.IssueFlowRecord {
	return lo.Filter(p.records, func(r schema.IssueFlowRecord, _ int) bool {
		if !p.opts.IncludeCompleted && r.IsTerminal() {
			return false
		}
		return r.StageDuration(stage) > 0
	})
}

// ActiveCount returns the number of non-terminal records with activity.
func (p *Population) ActiveCount() int {
	return lo.CountBy(p.records, func(r schema.IssueFlowRecord) bool {
		return !r.IsTerminal() && r.HasActivity()
	})
}

// WithActivityCount returns the number of records with any stage activity.
func (p *Population) WithActivityCount() int {
	return lo.CountBy(p.records, func(r schema.IssueFlowRecord) bool {
		return r.HasActivity()
	})
}
