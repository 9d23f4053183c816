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

// PrintPlanningResults outputs planning accuracy, dispatching based on the
// output format configured.
func PrintPlanningResults(result schema.PlanningAccuracy, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVPlanning(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printPlanningTable(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
		fmt.Printf("Analysis completed in %v\n", duration)
	}
	return nil
}

// printCSVPlanning handles opening the file and writing the single CSV row.
func printCSVPlanning(result schema.PlanningAccuracy, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"committed_count", "uncommitted_count", "delivered_count", "planning_accuracy"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return csvWriter.Write([]string{
				strconv.Itoa(result.CommittedCount),
				strconv.Itoa(result.UncommittedCount),
				strconv.Itoa(result.DeliveredCount),
				fmtFloat(result.Accuracy),
			})
		})
	}, "Wrote CSV")
}

// printPlanningTable prints planning accuracy as a console table.
func printPlanningTable(result schema.PlanningAccuracy, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Committed", "Uncommitted", "Delivered", "Accuracy", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{{
		strconv.Itoa(result.CommittedCount),
		strconv.Itoa(result.UncommittedCount),
		strconv.Itoa(result.DeliveredCount),
		fmtFloat(result.Accuracy) + "%",
		healthLabel(cfg, result.Accuracy),
	}}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
