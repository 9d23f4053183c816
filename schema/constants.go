package schema

import "strings"

// Custom string types for type safety.
type (
	// Dimension represents one of the five health dimensions.
	Dimension string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for scorecard history.
	StoreBackend string

	// WindowSelector represents a named or relative time-range selector.
	WindowSelector string

	// MetricDirection indicates whether a higher metric value is better.
	MetricDirection string
)

// The five health dimensions of a scorecard.
const (
	FlowDimension           Dimension = "flow"
	PredictabilityDimension Dimension = "predictability"
	QualityDimension        Dimension = "quality"
	StabilityDimension      Dimension = "stability"
	EfficiencyDimension     Dimension = "efficiency"
)

// AllDimensions lists the dimensions in scorecard rendering order.
var AllDimensions = []Dimension{
	FlowDimension,
	PredictabilityDimension,
	QualityDimension,
	StabilityDimension,
	EfficiencyDimension,
}

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Relative window selectors. Named-PI selectors are any other label.
const (
	CurrentPISelector   WindowSelector = "current_pi"
	LastPISelector      WindowSelector = "last_pi"
	LastQuarterSelector WindowSelector = "last_quarter"
	Last6MonthsSelector WindowSelector = "last_6_months"
	LastYearSelector    WindowSelector = "last_year"
)

// Workflow stage names, in delivery order. Ingestion rejects records that
// carry a stage outside this set.
const (
	StageBacklog    = "backlog"
	StageAnalysis   = "analysis"
	StageInProgress = "in_progress"
	StageInReview   = "in_review"
	StageInSIT      = "in_sit"
	StageInUAT      = "in_uat"
	StageDeployment = "deployment"
)

// AllStages lists the known stages in delivery order.
var AllStages = []string{
	StageBacklog,
	StageAnalysis,
	StageInProgress,
	StageInReview,
	StageInSIT,
	StageInUAT,
	StageDeployment,
}

// KnownStages is the membership set for ingestion validation.
var KnownStages = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllStages))
	for _, s := range AllStages {
		set[s] = struct{}{}
	}
	return set
}()

// ActiveStages are the stages counted as value-adding time when computing
// flow efficiency. Everything else is wait time.
var ActiveStages = map[string]struct{}{
	StageInProgress: {},
	StageInReview:   {},
}

// TerminalStatuses are the statuses that mark a record as completed,
// keyed by their normalized form.
var TerminalStatuses = map[string]struct{}{
	"done":     {},
	"deployed": {},
}

// NormalizeScopeValue case-folds and trims a scope-classification value
// (art, team, pi, status) for comparison. Ingested data does not guarantee
// consistent casing.
func NormalizeScopeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
