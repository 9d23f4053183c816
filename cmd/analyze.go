package cmd

import (
	"github.com/flowlens/flowlens/core"
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full analysis pipeline and persists a scorecard.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flow-records-file]",
	Short: "Run a full delivery-flow analysis and produce a scorecard.",
	Long: `Run the full analysis pipeline over a delivery-flow export.

Computes per-stage duration statistics, ranks stage bottlenecks, finds stuck
items, measures planning accuracy and folds everything into a five-dimension
health scorecard. The scorecard is appended to the configured store.

Examples:
  # Score the current PI across all teams
  flowlens analyze flow.json --calendar pi-calendar.yaml

  # Score one team with planning accuracy included
  flowlens analyze flow.json --commitments commitments.json --team Phoenix

  # Include completed items and lower the stuck threshold
  flowlens analyze flow.csv --include-completed --threshold-days 14

  # Export findings to CSV for tracking
  flowlens analyze flow.json --output csv --output-file scorecard.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFlowAnalyze(cfg); err != nil {
			contract.LogFatal("Cannot run flow analysis", err)
		}
	},
}
