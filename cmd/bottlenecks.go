package cmd

import (
	"github.com/flowlens/flowlens/core"
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/spf13/cobra"
)

// bottlenecksCmd ranks workflow stages by bottleneck severity.
var bottlenecksCmd = &cobra.Command{
	Use:   "bottlenecks [flow-records-file]",
	Short: "Show workflow stages ranked by bottleneck severity.",
	Long: `Rank workflow stages by how much they slow delivery down.

Each stage is scored from its mean duration and the share of items exceeding
the stuck threshold, so both chronic slowness and outlier pileups surface.

Examples:
  # Rank stages for the current PI
  flowlens bottlenecks flow.json

  # Rank stages for one ART over the last quarter
  flowlens bottlenecks flow.json --art SAART --window last_quarter

  # Export the ranking as JSON
  flowlens bottlenecks flow.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFlowBottlenecks(cfg); err != nil {
			contract.LogFatal("Cannot run bottleneck analysis", err)
		}
	},
}
