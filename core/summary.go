// Package core orchestrates contribution summary runs.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/history"
	"github.com/huangsam/gitshare/internal/identity"
	"github.com/huangsam/gitshare/schema"
)

// CacheVersion invalidates cached summaries when the computation changes.
const CacheVersion = 1

// CacheKey builds the summary cache key. Keying on the HEAD hash means any
// new commit naturally invalidates cached results for windows that end today.
func CacheKey(repoHash string, window schema.Window, skipCurrentLines bool) string {
	return fmt.Sprintf("summary|%s|%s|%s|loc=%t",
		repoHash,
		window.StartDate.Format(contract.DateFormat),
		window.EndDate.Format(contract.DateFormat),
		!skipCurrentLines)
}

// BuildSummary computes the raw contribution summary for one window,
// consulting the summary cache when a store is available. The commit log
// failing is fatal; cache failures only cost a recomputation.
func BuildSummary(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager, window schema.Window, now time.Time) (*schema.ContributionSummary, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetSummaryStore()
	}

	var key string
	if store != nil {
		repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
		if err != nil {
			contract.LogWarn("cannot resolve HEAD for caching, recomputing", err)
		} else {
			key = CacheKey(repoHash, window, cfg.SkipCurrentLines)
		}
	}

	if store != nil && key != "" {
		if cached := lookupCached(store, key); cached != nil {
			return cached, nil
		}
	}

	summary, err := history.CollectWindow(ctx, client, cfg.RepoPath, window.StartDate, window.EndDate)
	if err != nil {
		return nil, err
	}

	if !cfg.SkipCurrentLines {
		snap := history.NewSnapshot(client, cfg)
		counts, version, err := snap.CountLines(ctx, window.EndDate, now)
		if err != nil {
			return nil, err
		}
		summary.Metrics[schema.MetricCurrentLines] = counts
		summary.SnapshotVersion = version
	}

	if store != nil && key != "" {
		storeCached(store, key, summary, now)
	}

	return summary, nil
}

// lookupCached returns a cached summary for the key, or nil.
func lookupCached(store contract.CacheStore, key string) *schema.ContributionSummary {
	data, version, _, err := store.Get(key)
	if err != nil || version != CacheVersion {
		return nil
	}
	var summary schema.ContributionSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		contract.LogWarn("discarding unreadable cache entry", err)
		return nil
	}
	return &summary
}

// storeCached writes a computed summary into the cache, best-effort.
func storeCached(store contract.CacheStore, key string, summary *schema.ContributionSummary, now time.Time) {
	data, err := json.Marshal(summary)
	if err != nil {
		contract.LogWarn("cannot serialize summary for caching", err)
		return
	}
	if err := store.Set(key, data, CacheVersion, now.Unix()); err != nil {
		contract.LogWarn("cannot store summary in cache", err)
	}
}

// FoldResult folds aliases into canonical contributors and orders every
// metric alphabetically, producing the presentation-ready result.
func FoldResult(summary *schema.ContributionSummary, cfg *contract.Config, window schema.Window, now time.Time) *schema.SummaryResult {
	shares := make(map[schema.Metric][]schema.AuthorShare, len(schema.AllMetrics))
	for _, metric := range schema.AllMetrics {
		if cfg.SkipCurrentLines && metric == schema.MetricCurrentLines {
			continue
		}
		shares[metric] = identity.Shares(summary.Counts(metric), identity.AliasTable(cfg.Aliases))
	}
	return &schema.SummaryResult{
		Window:          window,
		SnapshotVersion: summary.SnapshotVersion,
		Shares:          shares,
		GeneratedAt:     now,
	}
}

// RecordRun persists one completed summary run into the run-history store.
// A nil manager or absent run store is a no-op.
func RecordRun(mgr contract.StoreManager, cfg *contract.Config, result *schema.SummaryResult, startedAt, finishedAt time.Time) error {
	if mgr == nil {
		return nil
	}
	store := mgr.GetRunStore()
	if store == nil {
		return nil
	}

	runID, err := store.BeginRun(cfg.RepoPath, result.Window, startedAt)
	if err != nil {
		return fmt.Errorf("failed to begin run: %w", err)
	}
	for _, metric := range schema.AllMetrics {
		for _, share := range result.Shares[metric] {
			if err := store.RecordAuthorMetric(runID, metric, share.Author, share.Count); err != nil {
				return fmt.Errorf("failed to record %s for %s: %w", metric, share.Author, err)
			}
		}
	}
	if err := store.EndRun(runID, finishedAt); err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}
	return nil
}
