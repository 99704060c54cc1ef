package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/peekay/feedex"
)

// Ensure LoggingEnricher implements feedex.Enricher.
var _ feedex.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with per-batch logging.
type LoggingEnricher struct {
	next   feedex.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next feedex.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the outcome.
func (e *LoggingEnricher) Enrich(ctx context.Context, records []*feedex.Record) error {
	begin := time.Now()
	err := e.next.Enrich(ctx, records)
	if err != nil {
		e.logger.Warn("enrichment batch failed",
			"records", len(records),
			"error", err,
			"duration", time.Since(begin),
		)
		return err
	}
	e.logger.Info("enrichment batch",
		"records", len(records),
		"duration", time.Since(begin),
	)
	return nil
}
