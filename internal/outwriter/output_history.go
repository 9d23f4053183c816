package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHistoryResults outputs stored scorecards, dispatching based on the
// output format configured. Records arrive newest first from the store.
func PrintHistoryResults(records []schema.ScorecardRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVHistory(records, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printHistoryTable(records, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printCSVHistory handles opening the file and writing all stored rows.
func printCSVHistory(records []schema.ScorecardRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"id",
			"scope",
			"scope_id",
			"window_start",
			"window_end",
			"overall_score",
			"label",
			"created_at",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, rec := range records {
				row := []string{
					rec.ID,
					rec.Scope,
					rec.ScopeID,
					rec.WindowStart.Format("2006-01-02"),
					rec.WindowEnd.Format("2006-01-02"),
					fmtFloat(rec.OverallScore),
					contract.GetPlainHealthLabel(rec.OverallScore),
					rec.CreatedAt.Format("2006-01-02 15:04:05"),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printHistoryTable prints stored scorecards as a console table.
func printHistoryTable(records []schema.ScorecardRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Created", "Scope", "Scope ID", "Window", "Score", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range records {
		window := fmt.Sprintf("%s to %s",
			rec.WindowStart.Format("2006-01-02"),
			rec.WindowEnd.Format("2006-01-02"))
		data = append(data, []string{
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Scope,
			contract.TruncateID(rec.ScopeID, GetMaxTableScopeWidth(cfg)),
			window,
			fmtFloat(rec.OverallScore),
			healthLabel(cfg, rec.OverallScore),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("%d scorecards shown\n", len(records))
	return nil
}

// PrintStoreStatus prints the scorecard store status.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}

	fmt.Printf("Backend:    %s\n", status.Backend)
	fmt.Printf("Connected:  %t\n", status.Connected)
	fmt.Printf("Scorecards: %d\n", status.TotalScorecards)
	if status.TotalScorecards > 0 {
		fmt.Printf("Oldest:     %s\n", status.OldestCreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest:     %s\n", status.LastCreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
