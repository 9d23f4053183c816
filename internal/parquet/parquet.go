// Package parquet provides data structures and functions for exporting
// scorecard history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flowlens/flowlens/schema"
	"github.com/parquet-go/parquet-go"
)

// ScorecardRow represents a single stored scorecard.
// This struct maps to the flowlens_scorecards database table.
type ScorecardRow struct {
	// ID is the unique identifier of the scorecard
	ID string `parquet:"id,snappy"`

	// Scope is the scope level: team, art, pi or portfolio
	Scope string `parquet:"scope,snappy"`

	// ScopeID is the identifier within the scope level
	ScopeID string `parquet:"scope_id,snappy"`

	// WindowStart is the inclusive start of the analysis window
	WindowStart time.Time `parquet:"window_start,snappy"`

	// WindowEnd is the exclusive end of the analysis window
	WindowEnd time.Time `parquet:"window_end,snappy"`

	// OverallScore is the mean of the five dimension scores
	OverallScore float64 `parquet:"overall_score,snappy"`

	// DimensionScores contains the JSON-encoded dimension scores (nullable)
	DimensionScores *string `parquet:"dimension_scores,optional,snappy"`

	// Metrics contains the JSON-encoded metric values (nullable)
	Metrics *string `parquet:"metrics,optional,snappy"`

	// CreatedAt is when the scorecard was created
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// WriteScorecardsParquet writes a slice of ScorecardRow structs to a Parquet file.
func WriteScorecardsParquet(data []ScorecardRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ScorecardRow struct tags
	writer := parquet.NewGenericWriter[ScorecardRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchScorecardRows generates sample ScorecardRow data for demonstration.
func MockFetchScorecardRows() []ScorecardRow {
	now := time.Now()
	dims1 := `{"flow":72.5,"predictability":80.0,"quality":65.0,"stability":90.0,"efficiency":55.0}`
	metrics1 := `{"flow_efficiency":41.2,"stuck_ratio":0.12,"avg_lead_time_days":23.4}`
	dims2 := `{"flow":48.0,"predictability":62.5,"quality":70.0,"stability":85.0,"efficiency":39.0}`

	return []ScorecardRow{
		{
			ID:              "b7c3a1f0-1111-4a2b-9c3d-000000000001",
			Scope:           "team",
			ScopeID:         "blue",
			WindowStart:     now.Add(-35 * 24 * time.Hour),
			WindowEnd:       now,
			OverallScore:    72.5,
			DimensionScores: &dims1,
			Metrics:         &metrics1,
			CreatedAt:       now.Add(-1 * time.Hour),
		},
		{
			ID:              "b7c3a1f0-1111-4a2b-9c3d-000000000002",
			Scope:           "art",
			ScopeID:         "SAART",
			WindowStart:     now.Add(-70 * 24 * time.Hour),
			WindowEnd:       now.Add(-35 * 24 * time.Hour),
			OverallScore:    60.9,
			DimensionScores: &dims2,
			Metrics:         nil, // No metrics stored - nullable field
			CreatedAt:       now.Add(-24 * time.Hour),
		},
	}
}

// ConvertScorecardRecords converts store records to Parquet rows. Dimension
// scores and metrics flatten to JSON strings so nested maps stay queryable.
func ConvertScorecardRecords(records []schema.ScorecardRecord) []ScorecardRow {
	rows := make([]ScorecardRow, len(records))
	for i, rec := range records {
		rows[i] = ScorecardRow{
			ID:           rec.ID,
			Scope:        rec.Scope,
			ScopeID:      rec.ScopeID,
			WindowStart:  rec.WindowStart,
			WindowEnd:    rec.WindowEnd,
			OverallScore: rec.OverallScore,
			CreatedAt:    rec.CreatedAt,
		}
		if rec.DimensionScores != nil {
			if encoded, err := json.Marshal(rec.DimensionScores); err == nil {
				s := string(encoded)
				rows[i].DimensionScores = &s
			}
		}
		if rec.Metrics != nil {
			if encoded, err := json.Marshal(rec.Metrics); err == nil {
				s := string(encoded)
				rows[i].Metrics = &s
			}
		}
	}
	return rows
}
