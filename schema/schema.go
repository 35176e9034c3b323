// Package schema has configs, models and global variables for all parts of gitshare.
package schema

import (
	"fmt"
	"time"
)

// AuthorCounts maps a recorded author name to an integer count.
type AuthorCounts map[string]int

// Clone returns a copy of the counts map.
func (ac AuthorCounts) Clone() AuthorCounts {
	out := make(AuthorCounts, len(ac))
	for k, v := range ac {
		out[k] = v
	}
	return out
}

// Total returns the sum of all counts.
func (ac AuthorCounts) Total() int {
	total := 0
	for _, v := range ac {
		total += v
	}
	return total
}

// ContributionSummary holds raw per-author counts keyed by metric.
// It is built fresh per invocation and has no persistence of its own;
// the iocache layer serializes it as JSON when caching.
type ContributionSummary struct {
	// Metrics maps each metric to its per-author counts.
	Metrics map[Metric]AuthorCounts `json:"metrics"`

	// SnapshotVersion tags the snapshot used for the current-lines metric,
	// e.g. "modern@2023-02-15". Empty when that metric was not computed.
	SnapshotVersion string `json:"snapshot_version,omitempty"`
}

// NewContributionSummary returns a summary with all metric maps initialized.
func NewContributionSummary() *ContributionSummary {
	metrics := make(map[Metric]AuthorCounts, len(AllMetrics))
	for _, m := range AllMetrics {
		metrics[m] = make(AuthorCounts)
	}
	return &ContributionSummary{Metrics: metrics}
}

// Add increments the count for an author under a metric.
func (cs *ContributionSummary) Add(metric Metric, author string, n int) {
	if cs.Metrics[metric] == nil {
		cs.Metrics[metric] = make(AuthorCounts)
	}
	cs.Metrics[metric][author] += n
}

// Counts returns the per-author counts for a metric (never nil).
func (cs *ContributionSummary) Counts(metric Metric) AuthorCounts {
	if cs.Metrics[metric] == nil {
		return AuthorCounts{}
	}
	return cs.Metrics[metric]
}

// AuthorShare is a single author's folded count for one metric,
// presented in deterministic order by the identity layer.
type AuthorShare struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// Window is a resolved reporting date range derived from a year pair.
type Window struct {
	StartYear int       `json:"start_year"`
	EndYear   int       `json:"end_year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Label returns the "<start>-<end>" form used in output file names.
func (w Window) Label() string {
	return fmt.Sprintf("%d-%d", w.StartYear, w.EndYear)
}

// SummaryResult is the folded, presentation-ready result for one window.
type SummaryResult struct {
	Window          Window                   `json:"window"`
	SnapshotVersion string                   `json:"snapshot_version,omitempty"`
	Shares          map[Metric][]AuthorShare `json:"shares"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// CacheStatus holds status information about the summary cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// RunsStatus holds status information about the run-history store.
type RunsStatus struct {
	Backend    string
	Connected  bool
	TotalRuns  int
	TableSizes map[string]int
}

// RunRecord is one completed summary run as stored in the run-history store.
type RunRecord struct {
	RunID      int64
	RepoPath   string
	StartDate  time.Time
	EndDate    time.Time
	StartedAt  time.Time
	FinishedAt *time.Time
}

// AuthorMetricRecord is one per-author metric value attached to a run.
type AuthorMetricRecord struct {
	RunID      int64
	Metric     string
	Author     string
	Count      int
	RecordedAt time.Time
}
