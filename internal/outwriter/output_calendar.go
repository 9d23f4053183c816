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

// PrintWindowResults outputs the configured PI calendar, dispatching based on
// the output format configured. Windows print in calendar order.
func PrintWindowResults(windows []schema.PIWindow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, windows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVWindows(windows, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printWindowTable(windows); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printCSVWindows handles opening the file and writing the calendar rows.
func printCSVWindows(windows []schema.PIWindow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"name", "start_date", "end_date"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, win := range windows {
				row := []string{
					win.Name,
					win.StartDate.Format("2006-01-02"),
					win.EndDate.Format("2006-01-02"),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printWindowTable prints the calendar as a console table.
func printWindowTable(windows []schema.PIWindow) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"PI", "Start", "End", "Days"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, win := range windows {
		days := int(win.EndDate.Sub(win.StartDate).Hours()/24) + 1
		data = append(data, []string{
			win.Name,
			win.StartDate.Format("2006-01-02"),
			win.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%d", days),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("%d PI windows configured\n", len(windows))
	return nil
}
