// Package retry provides retrying decorators for outbound service
// calls.
package retry

import (
	"context"
	"time"

	"github.com/peekay/feedex"
)

// Ensure Enricher implements feedex.Enricher at compile time.
var _ feedex.Enricher = (*Enricher)(nil)

// DefaultDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Enricher wraps another enricher with exponential backoff retries.
// Only EUNAVAILABLE failures are retried; any other error is
// deterministic and returns immediately.
type Enricher struct {
	next   feedex.Enricher
	delays []time.Duration
}

// NewEnricher creates a retrying enricher using DefaultDelays.
func NewEnricher(next feedex.Enricher) *Enricher {
	return NewEnricherWithDelays(next, DefaultDelays())
}

// NewEnricherWithDelays is like NewEnricher but allows configurable
// delays. This is useful for testing without waiting for real delays.
func NewEnricherWithDelays(next feedex.Enricher, delays []time.Duration) *Enricher {
	return &Enricher{next: next, delays: delays}
}

// Enrich delegates to the wrapped enricher, retrying transient
// provider failures. One initial attempt plus one retry per delay.
func (e *Enricher) Enrich(ctx context.Context, records []*feedex.Record) error {
	var lastErr error
	for attempt := 0; attempt <= len(e.delays); attempt++ {
		err := e.next.Enrich(ctx, records)
		if err == nil {
			return nil
		}
		if feedex.ErrorCode(err) != feedex.EUNAVAILABLE {
			return err
		}
		lastErr = err

		if attempt >= len(e.delays) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.delays[attempt]):
		}
	}
	return lastErr
}
