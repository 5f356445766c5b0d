package datagen

import (
	"fmt"

	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// BatchInsertConfig configures batch insert behavior.
type BatchInsertConfig struct {
	// BatchSize is the number of rows per batch insert.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        500,
		ProgressInterval: 10000,
	}
}

// ProgressReporter tracks and reports row loading progress.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading rows")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}

// FormatSize formats a byte count as a human-readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
