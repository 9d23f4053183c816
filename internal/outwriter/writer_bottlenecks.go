package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

// writeJSONBottlenecks marshals the bottleneck ranking to JSON and writes it.
func writeJSONBottlenecks(w io.Writer, entries []schema.BottleneckEntry) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONBottleneckEntry struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.BottleneckEntry
	}

	output := make([]JSONBottleneckEntry, len(entries))
	for i, e := range entries {
		output[i] = JSONBottleneckEntry{
			Rank:            i + 1,
			Label:           contract.GetPlainSeverityLabel(e.Score),
			BottleneckEntry: e,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVBottlenecks writes the bottleneck ranking to a CSV writer.
func writeCSVBottlenecks(w *csv.Writer, entries []schema.BottleneckEntry, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"rank",
		"stage",
		"bottleneck_score",
		"severity",
		"mean_time",
		"max_time",
		"items_exceeding",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i, e := range entries {
		row := []string{
			strconv.Itoa(i + 1),
			e.Stage,
			fmtFloat(e.Score),
			contract.GetPlainSeverityLabel(e.Score),
			fmtFloat(e.MeanTime),
			fmtFloat(e.MaxTime),
			strconv.Itoa(e.ItemsExceeding),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
