// Package parquet provides data structures and functions for exporting
// run-history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

// Run represents a single summary run with metadata.
// This struct maps to the gitshare_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RepoPath is the absolute path of the analyzed repository
	RepoPath string `parquet:"repo_path,snappy"`

	// StartDate is the first day of the reporting window (YYYY-MM-DD)
	StartDate string `parquet:"start_date,snappy"`

	// EndDate is the last day of the reporting window (YYYY-MM-DD)
	EndDate string `parquet:"end_date,snappy"`

	// StartedAt is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`
}

// AuthorMetric represents one folded per-author metric value for a run.
// This struct maps to the gitshare_author_metrics database table.
type AuthorMetric struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Metric identifies the contribution statistic
	Metric string `parquet:"metric,snappy"`

	// Author is the canonical contributor name after alias folding
	Author string `parquet:"author,snappy"`

	// Count is the metric value attributed to the author
	Count int32 `parquet:"author_count,snappy"`

	// RecordedAt is when the value was stored
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteAuthorMetricsParquet writes a slice of AuthorMetric structs to a Parquet file.
func WriteAuthorMetricsParquet(data []AuthorMetric, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AuthorMetric struct tags
	writer := parquet.NewGenericWriter[AuthorMetric](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns returns sample run data for demonstration purposes.
// In a real scenario, this data would come from the runs database.
func MockFetchRuns() []Run {
	now := time.Now()
	startedAt1 := now.Add(-2 * time.Hour)
	finishedAt1 := startedAt1.Add(45 * time.Second)

	startedAt2 := now.Add(-24 * time.Hour)
	finishedAt2 := startedAt2.Add(3 * time.Minute)

	startedAt3 := now.Add(-10 * time.Minute)
	// Note: finishedAt3 is nil to demonstrate nullable fields

	return []Run{
		{
			RunID:      1,
			RepoPath:   "/home/user/projects/solver",
			StartDate:  "2021-11-25",
			EndDate:    "2025-08-24",
			StartedAt:  startedAt1,
			FinishedAt: &finishedAt1,
		},
		{
			RunID:      2,
			RepoPath:   "/home/user/projects/solver",
			StartDate:  "2014-01-01",
			EndDate:    "2021-11-24",
			StartedAt:  startedAt2,
			FinishedAt: &finishedAt2,
		},
		{
			RunID:      3,
			RepoPath:   "/home/user/projects/toolkit",
			StartDate:  "2023-01-01",
			EndDate:    "2023-12-31",
			StartedAt:  startedAt3,
			FinishedAt: nil, // Still running - nullable field
		},
	}
}

// MockFetchAuthorMetrics returns sample per-author metric data for demonstration purposes.
func MockFetchAuthorMetrics() []AuthorMetric {
	now := time.Now()

	return []AuthorMetric{
		{
			RunID:      1,
			Metric:     string(schema.MetricCommits),
			Author:     "Alice Smith",
			Count:      128,
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			RunID:      1,
			Metric:     string(schema.MetricLinesAdded),
			Author:     "Alice Smith",
			Count:      5420,
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			RunID:      1,
			Metric:     string(schema.MetricCommits),
			Author:     "Bob Jones",
			Count:      47,
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			RunID:      2,
			Metric:     string(schema.MetricCurrentLines),
			Author:     "Alice Smith",
			Count:      10234,
			RecordedAt: now.Add(-24 * time.Hour),
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:      record.RunID,
			RepoPath:   record.RepoPath,
			StartDate:  record.StartDate.Format(contract.DateFormat),
			EndDate:    record.EndDate.Format(contract.DateFormat),
			StartedAt:  record.StartedAt,
			FinishedAt: record.FinishedAt,
		}
	}
	return result
}

// ConvertAuthorMetricRecords converts schema.AuthorMetricRecord to AuthorMetric for Parquet export.
func ConvertAuthorMetricRecords(records []schema.AuthorMetricRecord) []AuthorMetric {
	result := make([]AuthorMetric, len(records))
	for i, record := range records {
		result[i] = AuthorMetric{
			RunID:      record.RunID,
			Metric:     record.Metric,
			Author:     record.Author,
			Count:      int32(record.Count),
			RecordedAt: record.RecordedAt,
		}
	}
	return result
}
