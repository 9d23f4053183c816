package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintStuckItemResults outputs stuck items, dispatching based on the output
// format configured. The result limit applies to all formats.
func PrintStuckItemResults(items []schema.StuckItem, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	total := len(items)
	if len(items) > cfg.ResultLimit {
		items = items[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONStuckItems(items, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVStuckItems(items, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printStuckItemTable(items, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
		fmt.Printf("Showing %d of %d items above %.1f days\n", len(items), total, cfg.ThresholdDays)
		fmt.Printf("Analysis completed in %v\n", duration)
	}
	return nil
}

// printJSONStuckItems handles opening the file and calling the JSON writer.
func printJSONStuckItems(items []schema.StuckItem, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONStuckItems(w, items)
	}, "Wrote JSON")
}

// printCSVStuckItems handles opening the file and calling the CSV writer.
func printCSVStuckItems(items []schema.StuckItem, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVStuckItems(csvWriter, items, fmtFloat)
	}, "Wrote CSV")
}

// printStuckItemTable prints stuck items as a console table, worst first.
func printStuckItemTable(items []schema.StuckItem, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Issue", "Team", "Stage", "Days", "Status"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, item := range items {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateID(item.IssueKey, GetMaxTableScopeWidth(cfg)),
			item.Team,
			item.Stage,
			fmtFloat(item.DaysInStage),
			item.Status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
