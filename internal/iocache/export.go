package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/gitshare/internal/parquet"
)

// ExecuteRunsExport performs the actual export of run-history data to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get runs status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total author metric records: %d\n", status.TableSizes[authorMetricsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all author metrics
	authorMetrics, err := store.GetAllAuthorMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve author metrics: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetAuthorMetrics := parquet.ConvertAuthorMetricRecords(authorMetrics)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write author metrics to Parquet
	authorMetricsFile := outputFile + ".author_metrics.parquet"
	if err := parquet.WriteAuthorMetricsParquet(parquetAuthorMetrics, authorMetricsFile); err != nil {
		return fmt.Errorf("failed to write author metrics: %w", err)
	}
	fmt.Printf("Exported %d author metric records to: %s\n", len(parquetAuthorMetrics), authorMetricsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
