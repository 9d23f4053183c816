package cmd

import (
	"fmt"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/internal/iostore"
	"github.com/flowlens/flowlens/internal/outwriter"
	"github.com/flowlens/flowlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scorecardsSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func scorecardsSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list/export commands)
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.ResultLimit = viper.GetInt("limit")
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")
	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return err
	}
	cfg.UseColors = colors

	// Initialize the store with the loaded config
	return iostore.InitStore(backend, connStr)
}

// scorecardsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func scorecardsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetScorecardDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// scorecardsCmd focused on scorecard history management.
//
// Note: Scorecards subcommands use minimal initialization (scorecardsSetup)
// instead of the full sharedSetup used by analysis commands. This avoids input
// file validation and complex config processing for simple store operations.
var scorecardsCmd = &cobra.Command{
	Use:   "scorecards",
	Short: "Manage scorecard history and exports",
	Long: `Manage the scorecard history produced by analyze runs.

Every analyze run appends one scorecard, storing:
- Scope and time window
- The five dimension scores and the overall score
- The underlying metric values

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent scorecards
  status  - Show store statistics
  export  - Export history to Parquet for analytics
  migrate - Run database schema migrations
  clear   - Remove all stored scorecards

Examples:
  # Show the most recent scorecards
  flowlens scorecards list

  # Export for analysis in pandas/DuckDB
  flowlens scorecards export --output-file scorecards.parquet`,
}

// scorecardsListCmd lists recent scorecards.
var scorecardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent scorecards, newest first",
	Long: `List stored scorecards, most recent first.

Use --limit to control how many rows print, and --output json/csv to feed
the history into other tools.

Examples:
  # Show the last 25 scorecards
  flowlens scorecards list

  # Show the last 100 as JSON
  flowlens scorecards list --limit 100 --output json`,
	PreRunE: scorecardsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := iostore.GetStore().List(cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Failed to list scorecards", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to print scorecards", err)
		}
	},
}

// scorecardsStatusCmd shows store status.
var scorecardsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the scorecard store.

Displays:
- Backend type and connection status
- Total number of scorecards stored
- Newest and oldest scorecard timestamps

Examples:
  # Check store status
  flowlens scorecards status`,
	PreRunE: scorecardsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.GetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStoreStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print store status", err)
		}
	},
}

// scorecardsExportCmd exports scorecard history to a Parquet file.
var scorecardsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to Parquet for BI tools and analytics",
	Long: `Export all stored scorecards to Parquet format for use with analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  flowlens scorecards export --output-file flowlens-data

  # Use with DuckDB for analysis
  flowlens scorecards export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.scorecards.parquet') LIMIT 10"`,
	PreRunE: scorecardsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteScorecardExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export scorecards", err)
		}
	},
}

// scorecardsMigrateCmd runs database migrations for the scorecard store.
var scorecardsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the scorecard store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  flowlens scorecards migrate

  # Migrate to specific version
  flowlens scorecards migrate --target-version 1

  # Rollback to initial state
  flowlens scorecards migrate --target-version 0`,
	PreRunE: scorecardsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateScorecards(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// scorecardsClearCmd clears the scorecard history.
var scorecardsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored scorecards",
	Long: `Delete the entire scorecard history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  flowlens scorecards export --output-file backup
  flowlens scorecards clear`,
	PreRunE: scorecardsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.GetStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear scorecards", err)
		}
		fmt.Println("Scorecard history cleared successfully.")
	},
}
