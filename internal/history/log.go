// Package history extracts per-author contribution data from git history.
package history

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

// Shortstat summary patterns. Git emits the singular form for single-line
// commits ("1 insertion(+)"), so both forms must match.
var (
	insertionsRe = regexp.MustCompile(`(\d+) insertions?\(\+\)`)
	deletionsRe  = regexp.MustCompile(`(\d+) deletions?\(-\)`)
)

// ParseShortLog aggregates raw `git log --shortstat --pretty=format:%an`
// output into per-author commit, insertion and deletion counts.
//
// The output is line-oriented: an unindented non-empty line names the author
// of a new commit, and an indented line carries that commit's shortstat
// summary. Commits without a diff (e.g. merges) emit no summary line and
// only count toward the commit metric.
func ParseShortLog(out []byte) *schema.ContributionSummary {
	summary := schema.NewContributionSummary()

	var currentAuthor string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, " ") {
			// Author name line
			currentAuthor = strings.TrimSpace(line)
			if currentAuthor != "" {
				summary.Add(schema.MetricCommits, currentAuthor, 1)
			}
			continue
		}

		// Statistics line (lines added/deleted)
		if currentAuthor == "" {
			continue
		}
		if added := matchCount(insertionsRe, line); added > 0 {
			summary.Add(schema.MetricLinesAdded, currentAuthor, added)
		}
		if deleted := matchCount(deletionsRe, line); deleted > 0 {
			summary.Add(schema.MetricLinesDeleted, currentAuthor, deleted)
		}
	}

	return summary
}

// matchCount extracts the numeric capture of a shortstat pattern, or 0.
func matchCount(re *regexp.Regexp, line string) int {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// CollectWindow runs the commit log for a date window and aggregates it.
// A failing log invocation aborts the run.
func CollectWindow(ctx context.Context, client contract.GitClient, repoPath string, startDate, endDate time.Time) (*schema.ContributionSummary, error) {
	out, err := client.ShortLog(ctx, repoPath, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("git log failed for %s..%s: %w",
			startDate.Format(contract.DateFormat), endDate.Format(contract.DateFormat), err)
	}
	return ParseShortLog(out), nil
}
