package cmd

import (
	"github.com/flowlens/flowlens/core"
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/spf13/cobra"
)

// stuckCmd lists delivery items stuck past the threshold.
var stuckCmd = &cobra.Command{
	Use:   "stuck [flow-records-file]",
	Short: "Show delivery items stuck past the duration threshold.",
	Long: `List the items whose stage duration exceeds the stuck threshold,
worst first.

By default every stage is searched. Use --stage to focus on a single stage,
and --include-completed to also flag items that eventually finished.

Examples:
  # Everything stuck more than 30 days (the default threshold)
  flowlens stuck flow.json

  # Items stuck in review for more than two weeks
  flowlens stuck flow.json --stage in_review --threshold-days 14

  # Include items that have since been delivered
  flowlens stuck flow.json --include-completed --threshold-days 60`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFlowStuck(cfg); err != nil {
			contract.LogFatal("Cannot run stuck-item analysis", err)
		}
	},
}
