package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAnalysisResult outputs a full analysis run, dispatching based on the
// output format configured.
func PrintAnalysisResult(result *schema.FlowAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONAnalysis(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVAnalysis(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := printAnalysisTables(result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONAnalysis handles opening the file and calling the JSON writer.
func printJSONAnalysis(result *schema.FlowAnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// printCSVAnalysis handles opening the file and calling the CSV writer.
// CSV output flattens the scorecard into one dimension row per line.
func printCSVAnalysis(result *schema.FlowAnalysisResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVAnalysis(csvWriter, result, fmtFloat)
	}, "Wrote CSV")
}

// printAnalysisTables prints the scorecard, stage statistics and bottleneck
// ranking as console tables.
func printAnalysisTables(result *schema.FlowAnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	sc := result.Scorecard

	fmt.Printf("📊 Scorecard for %s %q (%s to %s)\n",
		sc.Scope,
		contract.TruncateID(sc.ScopeID, GetMaxTableScopeWidth(cfg)),
		sc.WindowStart.Format("2006-01-02"),
		sc.WindowEnd.Format("2006-01-02"))
	fmt.Printf("Overall: %s (%s)\n\n", fmtFloat(sc.OverallScore), healthLabel(cfg, sc.OverallScore))

	if err := printDimensionTable(sc, cfg, fmtFloat); err != nil {
		return err
	}
	if err := printStageStatsTable(result.StageStats, cfg, fmtFloat); err != nil {
		return err
	}
	if err := printBottleneckTable(result.Bottlenecks, cfg, fmtFloat); err != nil {
		return err
	}

	fmt.Printf("Population: %d items, %d stuck above %.1f days\n",
		result.PopulationSize, len(result.StuckItems), cfg.ThresholdDays)
	if result.Planning != nil {
		fmt.Printf("Planning: %d committed, %d delivered (%s%% accuracy)\n",
			result.Planning.CommittedCount, result.Planning.DeliveredCount, fmtFloat(result.Planning.Accuracy))
	}
	fmt.Printf("Analysis completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}

// printDimensionTable renders the five dimension scores.
func printDimensionTable(sc *schema.Scorecard, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Dimension", "Score", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, dim := range schema.AllDimensions {
		score := sc.Dimensions[dim]
		data = append(data, []string{
			string(dim),
			fmtFloat(score),
			healthLabel(cfg, score),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// printStageStatsTable renders per-stage duration statistics. Stages nobody
// visited are skipped to keep the table focused.
func printStageStatsTable(stats map[string]schema.StageStatistics, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Stage", "Mean", "Median", "P95", "Max", "Count", "Exceeding"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, stage := range schema.AllStages {
		s, ok := stats[stage]
		if !ok || s.Count == 0 {
			continue
		}
		data = append(data, []string{
			s.Stage,
			fmtFloat(s.Mean),
			fmtFloat(s.Median),
			fmtFloat(s.P95),
			fmtFloat(s.Max),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%d", s.CountExceeding),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
