package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/huangsam/gitshare/core"
	"github.com/huangsam/gitshare/internal/chart"
	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/iocache"
	"github.com/huangsam/gitshare/internal/outwriter"
)

// summaryCmd computes per-contributor statistics for one or more year ranges.
var summaryCmd = &cobra.Command{
	Use:   "summary [start-year] [end-year]",
	Short: "Summarize per-contributor statistics over year ranges.",
	Long: `Aggregate git history into per-contributor commit counts, lines added,
lines deleted, and currently-attributable core code lines.

With two year arguments, one window is reported. With one, the window runs
from that year to today. With none, every configured preset range is reported.

Each window produces tables (or JSON/CSV) plus pie charts, one slice per
contributor, colored consistently across all charts.

Examples:
  # Report a single range
  gitshare summary 2021 2024

  # Report from 2017 to today
  gitshare summary 2017

  # Report every preset range, skipping the slow blame pass
  gitshare summary --skip-loc

  # Export one range as CSV
  gitshare summary 2021 2024 --output csv --output-file shares.csv`,
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeSummary(); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}

// executeSummary runs every resolved window end to end: compute, fold,
// write output, render charts, and record the run.
func executeSummary() error {
	writer := outwriter.NewOutWriter()
	mgr := storeManager
	if mgr == nil {
		mgr = iocache.Manager
	}

	for _, window := range cfg.Windows {
		startedAt := time.Now().UTC()

		summary, err := core.BuildSummary(rootCtx, cfg, gitClient, mgr, window, startedAt)
		if err != nil {
			return err
		}
		result := core.FoldResult(summary, cfg, window, startedAt)
		finishedAt := time.Now().UTC()

		if err := writer.WriteSummary(result, cfg, finishedAt.Sub(startedAt)); err != nil {
			return err
		}
		if err := chart.Write(cfg, result); err != nil {
			return err
		}
		if err := core.RecordRun(mgr, cfg, result, startedAt, finishedAt); err != nil {
			contract.LogWarn("cannot record run history", err)
		}
	}

	return nil
}
