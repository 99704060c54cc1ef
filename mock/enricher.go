package mock

import (
	"context"

	"github.com/peekay/feedex"
)

var _ feedex.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of feedex.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, records []*feedex.Record) error
}

func (e *Enricher) Enrich(ctx context.Context, records []*feedex.Record) error {
	return e.EnrichFn(ctx, records)
}
