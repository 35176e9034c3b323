package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/gitshare/schema"
)

func TestConvertRunRecords(t *testing.T) {
	startedAt := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	finishedAt := startedAt.Add(time.Minute)

	records := []schema.RunRecord{
		{
			RunID:      1,
			RepoPath:   "/repo",
			StartDate:  time.Date(2021, time.November, 25, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			StartedAt:  startedAt,
			FinishedAt: &finishedAt,
		},
		{RunID: 2, RepoPath: "/repo", StartedAt: startedAt},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(1), runs[0].RunID)
	assert.Equal(t, "2021-11-25", runs[0].StartDate)
	assert.Equal(t, "2024-06-15", runs[0].EndDate)
	assert.NotNil(t, runs[0].FinishedAt)
	assert.Nil(t, runs[1].FinishedAt)
}

func TestConvertAuthorMetricRecords(t *testing.T) {
	records := []schema.AuthorMetricRecord{
		{RunID: 1, Metric: "git_commits", Author: "Alice", Count: 12, RecordedAt: time.Now()},
	}

	metrics := ConvertAuthorMetricRecords(records)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Alice", metrics[0].Author)
	assert.Equal(t, int32(12), metrics[0].Count)
}

func TestWriteRunsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	finishedAt := time.Now().UTC()
	data := []Run{
		{RunID: 1, RepoPath: "/repo", StartDate: "2021-11-25", EndDate: "2024-06-15", StartedAt: time.Now().UTC(), FinishedAt: &finishedAt},
		{RunID: 2, RepoPath: "/repo", StartDate: "2014-01-01", EndDate: "2021-11-24", StartedAt: time.Now().UTC()},
	}

	require.NoError(t, WriteRunsParquet(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteAuthorMetricsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.parquet")
	data := []AuthorMetric{
		{RunID: 1, Metric: "git_commits", Author: "Alice", Count: 12, RecordedAt: time.Now().UTC()},
	}

	require.NoError(t, WriteAuthorMetricsParquet(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
