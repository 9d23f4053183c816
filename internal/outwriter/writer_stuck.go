package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/flowlens/flowlens/schema"
)

// writeJSONStuckItems marshals the stuck items to JSON and writes them.
func writeJSONStuckItems(w io.Writer, items []schema.StuckItem) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONStuckItem struct {
		Rank int `json:"rank"`
		schema.StuckItem
	}

	output := make([]JSONStuckItem, len(items))
	for i, item := range items {
		output[i] = JSONStuckItem{
			Rank:      i + 1,
			StuckItem: item,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVStuckItems writes the stuck items to a CSV writer.
func writeCSVStuckItems(w *csv.Writer, items []schema.StuckItem, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"rank",
		"issue_key",
		"art",
		"team",
		"pi",
		"stage",
		"days_in_stage",
		"status",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i, item := range items {
		row := []string{
			strconv.Itoa(i + 1),
			item.IssueKey,
			item.ART,
			item.Team,
			item.PI,
			item.Stage,
			fmtFloat(item.DaysInStage),
			item.Status,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
