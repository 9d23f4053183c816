// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints a full analysis result using the configured output format.
func (ow *OutWriter) WriteAnalysis(result *schema.FlowAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysisResult(result, cfg, duration)
}

// WriteBottlenecks prints the bottleneck ranking using the configured output format.
func (ow *OutWriter) WriteBottlenecks(entries []schema.BottleneckEntry, cfg *contract.Config, duration time.Duration) error {
	return PrintBottleneckResults(entries, cfg, duration)
}

// WriteStuckItems prints stuck items using the configured output format.
func (ow *OutWriter) WriteStuckItems(items []schema.StuckItem, cfg *contract.Config, duration time.Duration) error {
	return PrintStuckItemResults(items, cfg, duration)
}

// WritePlanning prints planning accuracy using the configured output format.
func (ow *OutWriter) WritePlanning(result schema.PlanningAccuracy, cfg *contract.Config, duration time.Duration) error {
	return PrintPlanningResults(result, cfg, duration)
}

// WriteWindows prints the PI calendar using the configured output format.
func (ow *OutWriter) WriteWindows(windows []schema.PIWindow, cfg *contract.Config) error {
	return PrintWindowResults(windows, cfg)
}

// WriteHistory prints stored scorecards using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.ScorecardRecord, cfg *contract.Config) error {
	return PrintHistoryResults(records, cfg)
}

// WriteStoreStatus prints the scorecard store status.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return PrintStoreStatus(status, cfg)
}

// GetMaxTableScopeWidth calculates the maximum width for scope identifiers in
// table output based on terminal width.
func GetMaxTableScopeWidth(cfg *contract.Config) int {
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

	// Reserve space for the fixed numeric columns with borders and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable identifier width
		return 12
	}
	if available > 50 {
		// Maximum identifier width to keep tables compact
		return 50
	}
	return available
}
