package schema

import "time"

// StoreStatus represents the status of the scorecard store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalScorecards int       `json:"total_scorecards"`
	LastCreatedAt   time.Time `json:"last_created_at"`
	OldestCreatedAt time.Time `json:"oldest_created_at"`
}

// ScorecardRecord is a flattened row from the flowlens_scorecards table,
// used by the history listing and the parquet export.
type ScorecardRecord struct {
	ID              string
	Scope           string
	ScopeID         string
	WindowStart     time.Time
	WindowEnd       time.Time
	OverallScore    float64
	DimensionScores map[Dimension]float64
	Metrics         map[string]float64
	CreatedAt       time.Time
}
