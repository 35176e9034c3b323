package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

// WriteSummaryResult outputs one window's result, dispatching based on the output format configured.
func WriteSummaryResult(result *schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, result)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTables(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteCurrentLinesResult outputs a standalone current-lines snapshot.
func WriteCurrentLinesResult(shares []schema.AuthorShare, version string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		type snapshotOutput struct {
			SnapshotVersion string               `json:"snapshot_version"`
			Shares          []schema.AuthorShare `json:"shares"`
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snapshotOutput{SnapshotVersion: version, Shares: shares})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"snapshot", "author", "lines"}, func(cw *csv.Writer) error {
				for _, share := range shares {
					if err := cw.Write([]string{version, share.Author, strconv.Itoa(share.Count)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "%s\n", headerLine(cfg, fmt.Sprintf("Current Core Code Lines [%s]", version))); err != nil {
				return err
			}
			if err := writeShareTable(w, shares, cfg, "Lines"); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Snapshot completed in %v\n", duration)
			return err
		}, "Wrote table")
	}
}

// writeSummaryTables renders one table per metric for the window.
func writeSummaryTables(w io.Writer, result *schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "%s\n", headerLine(cfg, fmt.Sprintf("Contribution Summary %s", result.Window.Label()))); err != nil {
		return err
	}

	for _, metric := range schema.AllMetrics {
		shares, ok := result.Shares[metric]
		if !ok {
			continue
		}
		title := schema.MetricTitles[metric]
		if metric == schema.MetricCurrentLines && result.SnapshotVersion != "" {
			title = fmt.Sprintf("%s [%s]", title, result.SnapshotVersion)
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", headerLine(cfg, title)); err != nil {
			return err
		}
		if err := writeShareTable(w, shares, cfg, "Count"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// writeShareTable renders one author/count table with a total row.
func writeShareTable(w io.Writer, shares []schema.AuthorShare, cfg *contract.Config, countHeader string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Contributor", countHeader})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTableNameWidth(cfg)
	total := 0
	var data [][]string
	for _, share := range shares {
		name := contract.TruncateName(share.Author, maxWidth)
		if cfg.UseColors {
			name = contract.AuthorColor.Sprint(name)
		}
		data = append(data, []string{name, strconv.Itoa(share.Count)})
		total += share.Count
	}

	totalLabel := "Total"
	if cfg.UseColors {
		totalLabel = contract.TotalColor.Sprint(totalLabel)
	}
	data = append(data, []string{totalLabel, strconv.Itoa(total)})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSummaryCSV writes every metric's shares as flat CSV rows.
func writeSummaryCSV(w io.Writer, result *schema.SummaryResult) error {
	header := []string{"start_year", "end_year", "metric", "author", "count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, metric := range schema.AllMetrics {
			for _, share := range result.Shares[metric] {
				rec := []string{
					strconv.Itoa(result.Window.StartYear),
					strconv.Itoa(result.Window.EndYear),
					string(metric),
					share.Author,
					strconv.Itoa(share.Count),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// headerLine formats a section header, colored when enabled.
func headerLine(cfg *contract.Config, text string) string {
	if cfg.UseColors {
		return contract.HeaderColor.Sprint(text)
	}
	return text
}
