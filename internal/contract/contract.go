// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitshare/schema"
)

// GitClient defines the necessary operations for contribution analysis.
// This allows the core logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- History ---

	// ShortLog returns the raw commit log output used for per-author
	// aggregation: one author line per commit followed by an indented
	// shortstat summary line.
	ShortLog(ctx context.Context, repoPath string, startDate, endDate time.Time) ([]byte, error)

	// --- Working Tree / Reference Resolution ---

	// IsWorkTreeClean reports whether the working tree has no uncommitted changes.
	IsWorkTreeClean(ctx context.Context, repoPath string) (bool, error)

	// RevBefore returns the most recent revision at or before the given date,
	// or an empty string when no such revision exists.
	RevBefore(ctx context.Context, repoPath string, date time.Time) (string, error)

	// CurrentRef returns the checked-out branch name, or the commit hash
	// when HEAD is detached.
	CurrentRef(ctx context.Context, repoPath string) (string, error)

	// Checkout switches the working tree to the given reference.
	Checkout(ctx context.Context, repoPath string, ref string) error

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// --- Blame ---

	// BlameFile returns the line-porcelain blame output for a file, relative
	// to the repository root, at the currently checked-out revision.
	BlameFile(ctx context.Context, repoPath string, path string) ([]byte, error)
}

// StoreManager defines the interface for accessing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSummaryStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for summary cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking summary runs and their
// per-author metric values.
type RunStore interface {
	// BeginRun creates a new run row and returns its unique ID
	BeginRun(repoPath string, window schema.Window, startedAt time.Time) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, finishedAt time.Time) error

	// RecordAuthorMetric stores one folded per-author metric value
	RecordAuthorMetric(runID int64, metric schema.Metric, author string, count int) error

	// GetAllRuns returns every recorded run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllAuthorMetrics returns every recorded per-author metric value
	GetAllAuthorMetrics() ([]schema.AuthorMetricRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunsStatus, error)

	// Close closes the underlying connection
	Close() error
}
