package cmd

import (
	"github.com/flowlens/flowlens/core"
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/spf13/cobra"
)

// windowsCmd lists the configured PI calendar.
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the configured PI calendar windows.",
	Long: `Print the PI calendar used for named-window resolution.

Windows print in configuration order, which is also the order used when a
date falls inside overlapping PIs.

Examples:
  # List all configured PI windows
  flowlens windows --calendar pi-calendar.yaml

  # Export the calendar as CSV
  flowlens windows --calendar pi-calendar.yaml --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFlowWindows(cfg); err != nil {
			contract.LogFatal("Cannot list PI windows", err)
		}
	},
}
