// Package rate provides rate-limited decorators for outbound service
// calls.
package rate

import (
	"context"

	"github.com/peekay/feedex"
	"golang.org/x/time/rate"
)

// Ensure Enricher implements feedex.Enricher at compile time.
var _ feedex.Enricher = (*Enricher)(nil)

// Enricher wraps another enricher with a token-bucket request limit so
// batch runs stay within provider quotas.
type Enricher struct {
	next    feedex.Enricher
	limiter *rate.Limiter
}

// NewEnricher creates a rate-limited enricher allowing rps requests
// per second with a burst of 1 (no bursting allowed).
func NewEnricher(next feedex.Enricher, rps float64) *Enricher {
	return &Enricher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Enrich blocks until the rate limit allows a request, then delegates.
// Returns an error if the context is canceled before the wait
// completes.
func (e *Enricher) Enrich(ctx context.Context, records []*feedex.Record) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	return e.next.Enrich(ctx, records)
}
