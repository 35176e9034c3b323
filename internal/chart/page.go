package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/identity"
	"github.com/huangsam/gitshare/schema"
)

// Display constants for the HTML report page.
const (
	pageChartHeight = "480px"
	pagePieRadius   = "60%"
)

// HTMLFileName returns the report page file name for one window.
func HTMLFileName(window schema.Window) string {
	return fmt.Sprintf("summary_%s.html", window.Label())
}

// WriteHTMLPage renders all metrics for one window onto a single interactive
// HTML page in the output directory.
func WriteHTMLPage(cfg *contract.Config, result *schema.SummaryResult) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir, err)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Contribution Summary %s", result.Window.Label())

	for _, metric := range schema.AllMetrics {
		shares := result.Shares[metric]
		if len(shares) == 0 {
			continue
		}
		page.AddCharts(metricPie(metric, result.Window, shares))
	}

	path := filepath.Join(cfg.OutputDir, HTMLFileName(result.Window))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create report page %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("cannot render report page %s: %w", path, err)
	}
	return nil
}

// metricPie builds one interactive pie chart for a metric.
func metricPie(metric schema.Metric, window schema.Window, shares []schema.AuthorShare) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    schema.MetricTitles[metric],
			Subtitle: window.Label(),
		}),
		charts.WithInitializationOpts(opts.Initialization{Height: pageChartHeight}),
	)

	data := make([]opts.PieData, 0, len(shares))
	for _, share := range shares {
		if share.Count <= 0 {
			continue
		}
		data = append(data, opts.PieData{
			Name:  share.Author,
			Value: share.Count,
			ItemStyle: &opts.ItemStyle{
				Color: identity.HexColorFor(share.Author),
			},
		})
	}

	pie.AddSeries(string(metric), data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: pagePieRadius}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
		)

	return pie
}
