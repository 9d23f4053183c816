package cmd

import (
	"github.com/flowlens/flowlens/core"
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/spf13/cobra"
)

// planningCmd computes delivered-vs-committed planning accuracy.
var planningCmd = &cobra.Command{
	Use:   "planning",
	Short: "Show delivered-vs-committed planning accuracy.",
	Long: `Compute planning accuracy from a PI commitments export.

Accuracy is the share of committed items that were delivered. Items planned
as both committed and uncommitted count once, as committed.

Examples:
  # Portfolio-wide accuracy
  flowlens planning --commitments commitments.json

  # One team's accuracy for a specific PI
  flowlens planning --commitments commitments.csv --team Phoenix --pi 26Q1`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFlowPlanning(cfg); err != nil {
			contract.LogFatal("Cannot run planning analysis", err)
		}
	},
}
