package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/iocache"
	"github.com/huangsam/gitshare/schema"
)

var testWindow = schema.Window{
	StartYear: 2021,
	EndYear:   2024,
	StartDate: time.Date(2021, time.November, 25, 0, 0, 0, 0, time.UTC),
	EndDate:   time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
}

func testCfg() *contract.Config {
	return &contract.Config{
		RepoPath:         "/repo",
		SkipCurrentLines: true,
		CacheBackend:     schema.SQLiteBackend,
	}
}

const shortLogOut = `Alice
 2 files changed, 10 insertions(+), 3 deletions(-)
Bob
 1 file changed, 5 insertions(+)
`

func TestCacheKey(t *testing.T) {
	key := CacheKey("abc123", testWindow, false)
	assert.Equal(t, "summary|abc123|2021-11-25|2024-06-15|loc=true", key)

	skipKey := CacheKey("abc123", testWindow, true)
	assert.Equal(t, "summary|abc123|2021-11-25|2024-06-15|loc=false", skipKey)
	assert.NotEqual(t, key, skipKey)
}

func TestBuildSummaryCacheMiss(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg()
	now := time.Now().UTC()
	key := CacheKey("hash123", testWindow, true)

	client := new(contract.MockGitClient)
	client.On("GetRepoHash", ctx, "/repo").Return("hash123", nil)
	client.On("ShortLog", ctx, "/repo", testWindow.StartDate, testWindow.EndDate).Return([]byte(shortLogOut), nil)

	store := new(iocache.MockCacheStore)
	store.On("Get", key).Return([]byte(nil), 0, int64(0), sql.ErrNoRows)
	store.On("Set", key, mock.Anything, CacheVersion, mock.Anything).Return(nil)

	mgr := new(iocache.MockStoreManager)
	mgr.On("GetSummaryStore").Return(store)

	summary, err := BuildSummary(ctx, cfg, client, mgr, testWindow, now)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Counts(schema.MetricCommits)["Alice"])
	assert.Equal(t, 10, summary.Counts(schema.MetricLinesAdded)["Alice"])
	assert.Equal(t, 5, summary.Counts(schema.MetricLinesAdded)["Bob"])

	store.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestBuildSummaryCacheHit(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg()
	now := time.Now().UTC()
	key := CacheKey("hash123", testWindow, true)

	cached := schema.NewContributionSummary()
	cached.Add(schema.MetricCommits, "Alice", 7)
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	client := new(contract.MockGitClient)
	client.On("GetRepoHash", ctx, "/repo").Return("hash123", nil)

	store := new(iocache.MockCacheStore)
	store.On("Get", key).Return(data, CacheVersion, now.Unix(), nil)

	mgr := new(iocache.MockStoreManager)
	mgr.On("GetSummaryStore").Return(store)

	summary, err := BuildSummary(ctx, cfg, client, mgr, testWindow, now)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Counts(schema.MetricCommits)["Alice"])

	// A cache hit never touches git history.
	client.AssertNotCalled(t, "ShortLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildSummaryStaleVersionRecomputes(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg()
	now := time.Now().UTC()
	key := CacheKey("hash123", testWindow, true)

	client := new(contract.MockGitClient)
	client.On("GetRepoHash", ctx, "/repo").Return("hash123", nil)
	client.On("ShortLog", ctx, "/repo", testWindow.StartDate, testWindow.EndDate).Return([]byte(shortLogOut), nil)

	store := new(iocache.MockCacheStore)
	store.On("Get", key).Return([]byte("{}"), CacheVersion+1, int64(0), nil)
	store.On("Set", key, mock.Anything, CacheVersion, mock.Anything).Return(nil)

	mgr := new(iocache.MockStoreManager)
	mgr.On("GetSummaryStore").Return(store)

	summary, err := BuildSummary(ctx, cfg, client, mgr, testWindow, now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Counts(schema.MetricCommits)["Bob"])
	client.AssertExpectations(t)
}

func TestBuildSummaryWithoutManager(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg()

	client := new(contract.MockGitClient)
	client.On("ShortLog", ctx, "/repo", testWindow.StartDate, testWindow.EndDate).Return([]byte(shortLogOut), nil)

	summary, err := BuildSummary(ctx, cfg, client, nil, testWindow, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Counts(schema.MetricCommits)["Alice"])
	client.AssertNotCalled(t, "GetRepoHash", mock.Anything, mock.Anything)
}

func TestBuildSummaryLogFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testCfg()

	client := new(contract.MockGitClient)
	client.On("ShortLog", ctx, "/repo", testWindow.StartDate, testWindow.EndDate).Return([]byte(nil), assert.AnError)

	_, err := BuildSummary(ctx, cfg, client, nil, testWindow, time.Now().UTC())
	assert.Error(t, err)
}

func TestFoldResult(t *testing.T) {
	now := time.Now().UTC()
	summary := schema.NewContributionSummary()
	summary.Add(schema.MetricCommits, "alice", 3)
	summary.Add(schema.MetricCommits, "Alice Smith", 2)
	summary.Add(schema.MetricCommits, "Bob", 1)

	cfg := testCfg()
	cfg.Aliases = map[string][]string{"Alice Smith": {"alice"}}

	result := FoldResult(summary, cfg, testWindow, now)

	assert.Equal(t, testWindow, result.Window)
	assert.Equal(t, []schema.AuthorShare{
		{Author: "Alice Smith", Count: 5},
		{Author: "Bob", Count: 1},
	}, result.Shares[schema.MetricCommits])

	// Skipped metric is absent entirely, not just empty.
	_, ok := result.Shares[schema.MetricCurrentLines]
	assert.False(t, ok)
}

func TestRecordRun(t *testing.T) {
	startedAt := time.Now().UTC()
	finishedAt := startedAt.Add(time.Second)
	cfg := testCfg()

	result := &schema.SummaryResult{
		Window: testWindow,
		Shares: map[schema.Metric][]schema.AuthorShare{
			schema.MetricCommits: {
				{Author: "Alice", Count: 5},
				{Author: "Bob", Count: 1},
			},
		},
	}

	t.Run("records all shares", func(t *testing.T) {
		store := new(iocache.MockRunStore)
		store.On("BeginRun", "/repo", testWindow, startedAt).Return(int64(42), nil)
		store.On("RecordAuthorMetric", int64(42), schema.MetricCommits, "Alice", 5).Return(nil)
		store.On("RecordAuthorMetric", int64(42), schema.MetricCommits, "Bob", 1).Return(nil)
		store.On("EndRun", int64(42), finishedAt).Return(nil)

		mgr := new(iocache.MockStoreManager)
		mgr.On("GetRunStore").Return(store)

		require.NoError(t, RecordRun(mgr, cfg, result, startedAt, finishedAt))
		store.AssertExpectations(t)
	})

	t.Run("nil manager is a no-op", func(t *testing.T) {
		assert.NoError(t, RecordRun(nil, cfg, result, startedAt, finishedAt))
	})

	t.Run("absent run store is a no-op", func(t *testing.T) {
		mgr := new(iocache.MockStoreManager)
		mgr.On("GetRunStore").Return(nil)
		assert.NoError(t, RecordRun(mgr, cfg, result, startedAt, finishedAt))
	})

	t.Run("begin failure surfaces", func(t *testing.T) {
		store := new(iocache.MockRunStore)
		store.On("BeginRun", "/repo", testWindow, startedAt).Return(int64(0), assert.AnError)

		mgr := new(iocache.MockStoreManager)
		mgr.On("GetRunStore").Return(store)

		assert.Error(t, RecordRun(mgr, cfg, result, startedAt, finishedAt))
	})
}
