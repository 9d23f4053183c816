package iostore

import (
	"errors"
	"fmt"

	"github.com/flowlens/flowlens/internal/parquet"
)

// ExecuteScorecardExport exports the stored scorecard history to a Parquet file.
func ExecuteScorecardExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := GetStore()
	if store == nil {
		return errors.New("scorecard store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalScorecards == 0 {
		return errors.New("no scorecards found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scorecards: %d\n", status.TotalScorecards)

	// Retrieve the full history
	records, err := store.GetAllScorecards()
	if err != nil {
		return fmt.Errorf("failed to retrieve scorecards: %w", err)
	}

	// Convert and write to Parquet
	rows := parquet.ConvertScorecardRecords(records)
	parquetFile := outputFile + ".scorecards.parquet"
	if err := parquet.WriteScorecardsParquet(rows, parquetFile); err != nil {
		return fmt.Errorf("failed to write scorecards: %w", err)
	}
	fmt.Printf("Exported %d scorecards to: %s\n", len(rows), parquetFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
