// Package chart renders contribution shares as pie charts, one slice per
// contributor, with slice colors derived from the contributor name so the
// same person keeps the same color across metrics and date ranges.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/internal/identity"
	"github.com/huangsam/gitshare/schema"
)

// Square canvas keeps the pie round regardless of label lengths.
const (
	pieWidth  = 900
	pieHeight = 900
)

// PNGFileName returns the chart file name for one metric and window.
func PNGFileName(metric schema.Metric, window schema.Window) string {
	return fmt.Sprintf("summary_%s_%s.png", metric, window.Label())
}

// WritePNGCharts renders one PNG pie chart per metric into the output
// directory, creating it if needed. Metrics with no recorded shares are
// skipped; a pie with zero slices has nothing to show.
func WritePNGCharts(cfg *contract.Config, result *schema.SummaryResult) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir, err)
	}

	for _, metric := range schema.AllMetrics {
		shares := result.Shares[metric]
		if len(shares) == 0 {
			continue
		}
		path := filepath.Join(cfg.OutputDir, PNGFileName(metric, result.Window))
		if err := writePNGChart(path, metric, result.Window, shares); err != nil {
			return err
		}
	}
	return nil
}

// writePNGChart renders a single pie chart file.
func writePNGChart(path string, metric schema.Metric, window schema.Window, shares []schema.AuthorShare) error {
	pie := chart.PieChart{
		Title:  fmt.Sprintf("%s (%s)", schema.MetricTitles[metric], window.Label()),
		Width:  pieWidth,
		Height: pieHeight,
		Values: pieValues(shares),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := pie.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("cannot render chart %s: %w", path, err)
	}
	return nil
}

// pieValues converts author shares into labeled, colored pie slices.
// Shares arrive already folded and alphabetically ordered.
func pieValues(shares []schema.AuthorShare) []chart.Value {
	values := make([]chart.Value, 0, len(shares))
	for _, share := range shares {
		if share.Count <= 0 {
			continue
		}
		c := identity.ColorFor(share.Author)
		values = append(values, chart.Value{
			Value: float64(share.Count),
			Label: fmt.Sprintf("%s (%d)", share.Author, share.Count),
			Style: chart.Style{
				FillColor: drawing.Color{R: c.R, G: c.G, B: c.B, A: 255},
			},
		})
	}
	return values
}
