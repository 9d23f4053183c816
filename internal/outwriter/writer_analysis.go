package outwriter

import (
	"encoding/csv"
	"strconv"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

// writeCSVAnalysis writes the scorecard data to a CSV writer, one dimension
// row per line so spreadsheet pivots stay simple.
func writeCSVAnalysis(w *csv.Writer, result *schema.FlowAnalysisResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"scorecard_id",
		"scope",
		"scope_id",
		"window_start",
		"window_end",
		"dimension",
		"score",
		"label",
		"overall_score",
		"population",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	sc := result.Scorecard
	for _, dim := range schema.AllDimensions {
		score := sc.Dimensions[dim]
		row := []string{
			sc.ID,
			sc.Scope,
			sc.ScopeID,
			sc.WindowStart.Format("2006-01-02"),
			sc.WindowEnd.Format("2006-01-02"),
			string(dim),
			fmtFloat(score),
			contract.GetPlainHealthLabel(score),
			fmtFloat(sc.OverallScore),
			strconv.Itoa(result.PopulationSize),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
