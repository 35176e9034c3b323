package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/history"
	"github.com/huangsam/gitshare/internal/identity"
	"github.com/huangsam/gitshare/internal/outwriter"
)

// locCmd counts currently-attributable lines of core code per contributor.
var locCmd = &cobra.Command{
	Use:   "loc",
	Short: "Count currently-attributable core code lines per contributor.",
	Long: `Blame every core source file and count the lines currently attributed
to each contributor.

By default the working tree as of today is analyzed. With --date, the most
recent revision at or before that date is checked out temporarily and
restored afterwards; this requires a clean working tree.

Examples:
  # Current attribution
  gitshare loc

  # Attribution as the repo stood at the end of 2022
  gitshare loc --date 2022-12-31`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeLoc(); err != nil {
			contract.LogFatal("Cannot run loc", err)
		}
	},
}

// executeLoc runs a standalone current-lines snapshot.
func executeLoc() error {
	now := time.Now().UTC()
	date := now
	if d := viper.GetString("date"); d != "" {
		parsed, err := time.Parse(contract.DateFormat, d)
		if err != nil {
			return err
		}
		date = parsed
	}

	startedAt := time.Now()
	snap := history.NewSnapshot(gitClient, cfg)
	counts, version, err := snap.CountLines(rootCtx, date, now)
	if err != nil {
		return err
	}

	shares := identity.Shares(counts, identity.AliasTable(cfg.Aliases))
	writer := outwriter.NewOutWriter()
	return writer.WriteCurrentLines(shares, version, cfg, time.Since(startedAt))
}
