// Package slog provides logging decorators for pipeline components.
package slog

import (
	"log/slog"
	"time"

	"github.com/peekay/feedex"
)

// Ensure LoggingExtractor implements feedex.PostExtractor.
var _ feedex.PostExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PostExtractor with extraction logging.
type LoggingExtractor struct {
	next   feedex.PostExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next feedex.PostExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractPosts delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractPosts(html string) ([]*feedex.Record, error) {
	begin := time.Now()
	records, err := e.next.ExtractPosts(html)
	if err != nil {
		e.logger.Error("post extraction failed",
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	if len(records) == 0 {
		e.logger.Warn("no post fragments found",
			"duration", time.Since(begin),
		)
		return records, nil
	}
	e.logger.Info("post extraction",
		"posts", len(records),
		"duration", time.Since(begin),
	)
	return records, nil
}
