package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

func testResult() *schema.SummaryResult {
	return &schema.SummaryResult{
		Window:          schema.Window{StartYear: 2021, EndYear: 2024},
		SnapshotVersion: "modern@2024-06-15",
		Shares: map[schema.Metric][]schema.AuthorShare{
			schema.MetricCommits: {
				{Author: "Alice", Count: 12},
				{Author: "Bob", Count: 5},
			},
			schema.MetricCurrentLines: {
				{Author: "Alice", Count: 800},
			},
		},
		GeneratedAt: time.Now(),
	}
}

func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:       output,
		OutputFile:   filepath.Join(t.TempDir(), "out.txt"),
		Width:        100,
		UseColors:    false,
		CacheBackend: schema.SQLiteBackend,
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	writer := NewOutWriter()

	require.NoError(t, writer.WriteSummary(testResult(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded schema.SummaryResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2021, decoded.Window.StartYear)
	assert.Equal(t, "modern@2024-06-15", decoded.SnapshotVersion)
	assert.Len(t, decoded.Shares[schema.MetricCommits], 2)
}

func TestWriteSummaryCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	writer := NewOutWriter()

	require.NoError(t, writer.WriteSummary(testResult(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	assert.Equal(t, "start_year,end_year,metric,author,count", lines[0])
	assert.Len(t, lines, 4) // header + 2 commit rows + 1 current-lines row
	assert.Contains(t, lines, "2021,2024,git_commits,Alice,12")
	assert.Contains(t, lines, "2021,2024,core_code_lines_current,Alice,800")
}

func TestWriteSummaryText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	writer := NewOutWriter()

	require.NoError(t, writer.WriteSummary(testResult(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Contribution Summary 2021-2024")
	assert.Contains(t, text, "Commits")
	assert.Contains(t, text, "Current Core Code Lines [modern@2024-06-15]")
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "Total")
	assert.Contains(t, text, "17") // commit total row
	assert.Contains(t, text, "Cache backend: sqlite")
}

func TestWriteCurrentLines(t *testing.T) {
	shares := []schema.AuthorShare{{Author: "Alice", Count: 800}}

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, NewOutWriter().WriteCurrentLines(shares, "modern@2024-06-15", cfg, time.Second))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var decoded struct {
			SnapshotVersion string               `json:"snapshot_version"`
			Shares          []schema.AuthorShare `json:"shares"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "modern@2024-06-15", decoded.SnapshotVersion)
		assert.Equal(t, shares, decoded.Shares)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		require.NoError(t, NewOutWriter().WriteCurrentLines(shares, "modern@2024-06-15", cfg, time.Second))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Equal(t, "snapshot,author,lines", lines[0])
		assert.Equal(t, "modern@2024-06-15,Alice,800", lines[1])
	})

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		require.NoError(t, NewOutWriter().WriteCurrentLines(shares, "modern@2024-06-15", cfg, time.Second))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "Current Core Code Lines [modern@2024-06-15]")
		assert.Contains(t, text, "Snapshot completed in")
	})
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow override clamps to minimum", 30, 15},
		{"mid override leaves room for counts", 60, 35},
		{"wide override clamps to maximum", 200, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, GetMaxTableNameWidth(cfg))
		})
	}
}
