package schema

// Metric direction values.
const (
	HigherIsBetter MetricDirection = "higher_better"
	LowerIsBetter  MetricDirection = "lower_better"
)

// Metric names produced by the engine. Callers may feed additional metrics
// (e.g. from quality tooling) into the same namespace.
const (
	MetricFlowEfficiency   = "flow_efficiency"
	MetricWIPRatio         = "wip_ratio"
	MetricAvgLeadTime      = "avg_lead_time_days"
	MetricStuckRatio       = "stuck_ratio"
	MetricPIPredictability = "pi_predictability"
	MetricDefectEscapeRate = "defect_escape_rate"
	MetricTeamStability    = "team_stability"
)

// DimensionMapping wires one metric into one health dimension. The scoring
// algorithm never branches on metric names; adding a metric to a dimension
// is a data change, not a code change.
type DimensionMapping struct {
	Metric    string          `mapstructure:"metric" json:"metric"`
	Dimension Dimension       `mapstructure:"dimension" json:"dimension"`
	Weight    float64         `mapstructure:"weight" json:"weight"`
	Direction MetricDirection `mapstructure:"direction" json:"direction"`
	Ceiling   float64         `mapstructure:"ceiling" json:"ceiling"` // Value at which the metric saturates
}

// DefaultDimensionMappings returns the built-in metric-to-dimension wiring.
// Config files may replace it wholesale.
func DefaultDimensionMappings() []DimensionMapping {
	return []DimensionMapping{
		{Metric: MetricFlowEfficiency, Dimension: FlowDimension, Weight: 0.6, Direction: HigherIsBetter, Ceiling: 100},
		{Metric: MetricWIPRatio, Dimension: FlowDimension, Weight: 0.4, Direction: LowerIsBetter, Ceiling: 1},
		{Metric: MetricPIPredictability, Dimension: PredictabilityDimension, Weight: 1.0, Direction: HigherIsBetter, Ceiling: 100},
		{Metric: MetricDefectEscapeRate, Dimension: QualityDimension, Weight: 1.0, Direction: LowerIsBetter, Ceiling: 100},
		{Metric: MetricTeamStability, Dimension: StabilityDimension, Weight: 1.0, Direction: HigherIsBetter, Ceiling: 100},
		{Metric: MetricAvgLeadTime, Dimension: EfficiencyDimension, Weight: 0.5, Direction: LowerIsBetter, Ceiling: 90},
		{Metric: MetricStuckRatio, Dimension: EfficiencyDimension, Weight: 0.5, Direction: LowerIsBetter, Ceiling: 1},
	}
}
