// Package cmd defines the command-line interface for flowlens.
package cmd

import (
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(bottlenecksCmd)
	rootCmd.AddCommand(stuckCmd)
	rootCmd.AddCommand(planningCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(scorecardsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the scorecards subcommands to the parent scorecards command
	scorecardsCmd.AddCommand(scorecardsListCmd)
	scorecardsCmd.AddCommand(scorecardsStatusCmd)
	scorecardsCmd.AddCommand(scorecardsExportCmd)
	scorecardsCmd.AddCommand(scorecardsMigrateCmd)
	scorecardsCmd.AddCommand(scorecardsClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("commitments", "", "Path to the PI commitments file (json or csv)")
	rootCmd.PersistentFlags().String("calendar", "", "Path to the PI calendar file (yaml)")
	rootCmd.PersistentFlags().StringP("window", "w", contract.DefaultWindow, "Time window: current_pi, last_pi, last_quarter, last_6_months, last_year or a PI label")
	rootCmd.PersistentFlags().String("art", "", "Comma-separated ART names to filter by")
	rootCmd.PersistentFlags().String("team", "", "Comma-separated team names to filter by")
	rootCmd.PersistentFlags().String("pi", "", "Comma-separated PI labels to filter by")
	rootCmd.PersistentFlags().Float64("threshold-days", contract.DefaultThresholdDays, "Stage-duration threshold in days for stuck-item detection")
	rootCmd.PersistentFlags().Bool("include-completed", false, "Include items with terminal status (Done, Deployed) in stage analysis")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Scorecard store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of stuckCmd to Viper
	stuckCmd.Flags().String("stage", "", "Narrow the search to one workflow stage")
	if err := viper.BindPFlags(stuckCmd.Flags()); err != nil {
		contract.LogFatal("Error binding stuck flags", err)
	}

	// Bind all flags of scorecardsMigrateCmd to Viper
	scorecardsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(scorecardsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding scorecards migrate flags", err)
	}
}
