package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/flowlens/flowlens/schema"
)

// AnalysisRequest carries everything one scorecard run needs. The engine is
// a pure computation over this value: no I/O, no shared state, safe to run
// concurrently with other requests.
type AnalysisRequest struct {
	Records     []schema.IssueFlowRecord
	Commitments []schema.PICommitmentRecord
	Scope       ScopeFilter
	Window      schema.TimeWindow
	Options     AnalysisOptions

	// Mappings wires metrics into dimensions; nil means the defaults.
	Mappings []schema.DimensionMapping

	// ExtraMetrics are externally computed metrics (defect escape rate,
	// team stability) merged into the scorecard's metric namespace.
	ExtraMetrics map[string]float64
}

// RunFlowAnalysis executes the full pipeline for one request: build the
// shared population, aggregate stage durations, rank bottlenecks, match
// stuck items, compute planning accuracy, and fold everything into a
// scorecard. Identical inputs produce an identical scorecard apart from its
// id and creation timestamp.
func RunFlowAnalysis(req AnalysisRequest) *schema.FlowAnalysisResult {
	pop := NewPopulation(req.Records, req.Scope, req.Window, req.Options)

	stats := AggregateStages(pop)
	bottlenecks := DetectBottlenecks(stats)
	stuck := StuckItems(pop)

	var planning *schema.PlanningAccuracy
	if req.Commitments != nil {
		p := CalculatePlanningAccuracy(FilterCommitments(req.Commitments, req.Scope))
		planning = &p
	}

	metrics := deriveMetrics(pop, stuck, planning)
	for name, value := range req.ExtraMetrics {
		metrics[name] = value
	}

	mappings := req.Mappings
	if mappings == nil {
		mappings = schema.DefaultDimensionMappings()
	}
	dimensions, overall := ScoreDimensions(metrics, mappings)

	scope, scopeID := describeScope(req.Scope)
	scorecard := &schema.Scorecard{
		ID:           uuid.NewString(),
		Scope:        scope,
		ScopeID:      scopeID,
		WindowStart:  req.Window.Start,
		WindowEnd:    req.Window.End,
		OverallScore: overall,
		Dimensions:   dimensions,
		Metrics:      metrics,
		CreatedAt:    time.Now().UTC(),
	}

	return &schema.FlowAnalysisResult{
		PopulationSize: pop.Len(),
		StageStats:     stats,
		Bottlenecks:    bottlenecks,
		StuckItems:     stuck,
		Planning:       planning,
		Scorecard:      scorecard,
	}
}

// deriveMetrics computes the engine-owned metrics from the filtered
// population. Every ratio over an empty denominator is defined as 0.
func deriveMetrics(pop *Population, stuck []schema.StuckItem, planning *schema.PlanningAccuracy) map[string]float64 {
	metrics := make(map[string]float64)

	var leadTimes []float64
	var activeDays, totalDays float64
	for _, r := range pop.Records() {
		if !r.HasActivity() {
			continue
		}
		leadTimes = append(leadTimes, r.TotalLeadTime)
		for stage, d := range r.Stages {
			totalDays += d
			if _, ok := schema.ActiveStages[stage]; ok {
				activeDays += d
			}
		}
	}

	var leadSum float64
	for _, lt := range leadTimes {
		leadSum += lt
	}
	if n := len(leadTimes); n > 0 {
		metrics[schema.MetricAvgLeadTime] = leadSum / float64(n)
	} else {
		metrics[schema.MetricAvgLeadTime] = 0
	}

	if totalDays > 0 {
		metrics[schema.MetricFlowEfficiency] = activeDays / totalDays * 100
	} else {
		metrics[schema.MetricFlowEfficiency] = 0
	}

	if withActivity := pop.WithActivityCount(); withActivity > 0 {
		metrics[schema.MetricWIPRatio] = float64(pop.ActiveCount()) / float64(withActivity)
	} else {
		metrics[schema.MetricWIPRatio] = 0
	}

	if pop.Len() > 0 {
		stuckKeys := lo.Uniq(lo.Map(stuck, func(s schema.StuckItem, _ int) string {
			return s.IssueKey
		}))
		metrics[schema.MetricStuckRatio] = float64(len(stuckKeys)) / float64(pop.Len())
	} else {
		metrics[schema.MetricStuckRatio] = 0
	}

	if planning != nil {
		metrics[schema.MetricPIPredictability] = planning.Accuracy
	}

	return metrics
}

// describeScope derives the scorecard's scope level and identifier from the
// narrowest constrained axis: team beats art beats portfolio.
func describeScope(scope ScopeFilter) (string, string) {
	switch {
	case len(scope.Teams) > 0:
		return "team", strings.Join(scope.Teams, ",")
	case len(scope.ARTs) > 0:
		return "art", strings.Join(scope.ARTs, ",")
	case len(scope.PIs) > 0:
		return "pi", strings.Join(scope.PIs, ",")
	default:
		return "portfolio", "all"
	}
}
