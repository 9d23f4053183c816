// Package schema has configs, models and constants for all parts of flowlens.
package schema

import "time"

// IssueFlowRecord represents one delivery item's stage-by-stage timing.
// Records arrive already shaped from the tracking system; the engine never
// talks to Jira directly.
type IssueFlowRecord struct {
	IssueKey      string             `json:"issue_key"`      // Unique identifier, stable across the system
	ART           string             `json:"art"`            // Agile release train; case is not normalized at ingestion
	Team          string             `json:"team"`           // Owning team; case is not normalized at ingestion
	PI            string             `json:"pi"`             // Program increment label
	Status        string             `json:"status"`         // Categorical status; terminal values are Done and Deployed
	Stages        map[string]float64 `json:"stages"`         // Days spent per stage, keyed by stage name
	TotalLeadTime float64            `json:"total_leadtime"` // Aggregate duration across stages in days
	ResolvedDate  time.Time          `json:"resolved_date"`  // Zero for items still in flight
}

// HasActivity reports whether the record visited any stage at all.
// Records with all-zero durations are excluded from activity calculations.
func (r IssueFlowRecord) HasActivity() bool {
	for _, d := range r.Stages {
		if d > 0 {
			return true
		}
	}
	return false
}

// StageDuration returns the days the record spent in the given stage.
// A missing stage reads as zero, which downstream code treats as "never
// visited", not as an instant pass-through.
func (r IssueFlowRecord) StageDuration(stage string) float64 {
	return r.Stages[stage]
}

// IsTerminal reports whether the record reached a terminal status.
func (r IssueFlowRecord) IsTerminal() bool {
	_, ok := TerminalStatuses[NormalizeScopeValue(r.Status)]
	return ok
}

// PIWindow is a named program increment with an inclusive calendar range.
// Windows in a configuration set may overlap; resolution order is list order.
type PIWindow struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ContainsDate reports whether d falls within the inclusive [start, end] range.
func (w PIWindow) ContainsDate(d time.Time) bool {
	return !d.Before(w.StartDate) && !d.After(w.EndDate)
}

// TimeWindow is a resolved half-open [Start, End) analysis range.
type TimeWindow struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls within the half-open window.
func (w TimeWindow) Contains(d time.Time) bool {
	return !d.Before(w.Start) && d.Before(w.End)
}

// PICommitmentRecord captures one issue's planning status within a PI.
// The three flags arrive heterogeneously typed from the tracking system
// (integer 1/0 on some records, string "1"/"0" on others), hence FlexBool.
type PICommitmentRecord struct {
	IssueKey           string   `json:"issue_key"`
	ART                string   `json:"art"`
	Team               string   `json:"team"`
	PI                 string   `json:"pi"`
	PlannedCommitted   FlexBool `json:"planned_committed"`
	PlannedUncommitted FlexBool `json:"planned_uncommitted"`
	PLCDelivery        FlexBool `json:"plc_delivery"`
}

// StageStatistics holds derived per-stage duration statistics. They are
// recomputed on every analysis request and never persisted independently.
type StageStatistics struct {
	Stage          string  `json:"stage"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	P95            float64 `json:"p95"`
	Max            float64 `json:"max"`
	Count          int     `json:"count"`
	CountExceeding int     `json:"count_exceeding"`
}

// BottleneckEntry is one stage's position in the bottleneck ranking.
type BottleneckEntry struct {
	Stage          string  `json:"stage"`
	Score          float64 `json:"bottleneck_score"`
	MeanTime       float64 `json:"mean_time"`
	MaxTime        float64 `json:"max_time"`
	ItemsExceeding int     `json:"items_exceeding_threshold"`
}

// StuckItem is one record whose stage duration exceeds the threshold.
type StuckItem struct {
	IssueKey    string  `json:"issue_key"`
	ART         string  `json:"art"`
	Team        string  `json:"team"`
	PI          string  `json:"pi"`
	Stage       string  `json:"stage"`
	DaysInStage float64 `json:"days_in_stage"`
	Status      string  `json:"status"`
}

// PlanningAccuracy holds the delivered-vs-committed outcome for one scope+PI.
type PlanningAccuracy struct {
	CommittedCount   int     `json:"committed_count"`
	UncommittedCount int     `json:"uncommitted_count"`
	DeliveredCount   int     `json:"delivered_count"`
	Accuracy         float64 `json:"planning_accuracy"`
}

// FlowAnalysisResult is the full output of one analysis request.
type FlowAnalysisResult struct {
	PopulationSize int                        `json:"population_size"`
	StageStats     map[string]StageStatistics `json:"stage_statistics"`
	Bottlenecks    []BottleneckEntry          `json:"bottleneck_ranking"`
	StuckItems     []StuckItem                `json:"stuck_items"`
	Planning       *PlanningAccuracy          `json:"planning,omitempty"`
	Scorecard      *Scorecard                 `json:"scorecard"`
}

// Scorecard is the persisted analysis output. Created once per analysis
// request and immutable after creation; history is append-only.
type Scorecard struct {
	ID           string                `json:"id"`
	Scope        string                `json:"scope"`
	ScopeID      string                `json:"scope_id"`
	WindowStart  time.Time             `json:"window_start"`
	WindowEnd    time.Time             `json:"window_end"`
	OverallScore float64               `json:"overall_score"`
	Dimensions   map[Dimension]float64 `json:"dimension_scores"`
	Metrics      map[string]float64    `json:"metrics"`
	CreatedAt    time.Time             `json:"created_at"`
}
