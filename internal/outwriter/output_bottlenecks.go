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

// PrintBottleneckResults outputs the bottleneck ranking, dispatching based on
// the output format configured.
func PrintBottleneckResults(entries []schema.BottleneckEntry, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONBottlenecks(entries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVBottlenecks(entries, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printBottleneckTable(entries, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
		fmt.Printf("Analysis completed in %v\n", duration)
	}
	return nil
}

// printJSONBottlenecks handles opening the file and calling the JSON writer.
func printJSONBottlenecks(entries []schema.BottleneckEntry, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONBottlenecks(w, entries)
	}, "Wrote JSON")
}

// printCSVBottlenecks handles opening the file and calling the CSV writer.
func printCSVBottlenecks(entries []schema.BottleneckEntry, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVBottlenecks(csvWriter, entries, fmtFloat)
	}, "Wrote CSV")
}

// printBottleneckTable prints the ranked stages as a console table.
func printBottleneckTable(entries []schema.BottleneckEntry, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Stage", "Score", "Severity", "Mean", "Max", "Exceeding"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Stage,
			fmtFloat(e.Score),
			severityLabel(cfg, e.Score),
			fmtFloat(e.MeanTime),
			fmtFloat(e.MaxTime),
			strconv.Itoa(e.ItemsExceeding),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
