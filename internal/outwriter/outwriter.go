// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/huangsam/gitshare/internal/contract"
	"github.com/huangsam/gitshare/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints one window's summary result using the configured output format.
func (ow *OutWriter) WriteSummary(result *schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResult(result, cfg, duration)
}

// WriteCurrentLines prints a standalone current-lines snapshot using the
// configured output format.
func (ow *OutWriter) WriteCurrentLines(shares []schema.AuthorShare, version string, cfg *contract.Config, duration time.Duration) error {
	return WriteCurrentLinesResult(shares, version, cfg, duration)
}

// GetMaxTableNameWidth calculates the maximum width for author names in table
// output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the count column plus table borders and padding
	available := termWidth - 25
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to prevent overly wide tables
		return 60
	}
	return available
}
