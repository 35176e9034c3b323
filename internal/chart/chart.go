package chart

import (
	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

// Write renders the chart artifacts selected by the configured chart mode.
func Write(cfg *contract.Config, result *schema.SummaryResult) error {
	switch cfg.Charts {
	case schema.PNGCharts:
		return WritePNGCharts(cfg, result)
	case schema.HTMLCharts:
		return WriteHTMLPage(cfg, result)
	case schema.BothCharts:
		if err := WritePNGCharts(cfg, result); err != nil {
			return err
		}
		return WriteHTMLPage(cfg, result)
	default:
		return nil
	}
}
