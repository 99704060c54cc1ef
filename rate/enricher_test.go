package rate_test

import (
	"context"
	"testing"
	"time"

	"github.com/peekay/feedex"
	"github.com/peekay/feedex/mock"
	"github.com/peekay/feedex/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_Delegates(t *testing.T) {
	t.Parallel()

	records := []*feedex.Record{{Name: "Ada Lovelace"}}

	var got []*feedex.Record
	next := &mock.Enricher{
		EnrichFn: func(ctx context.Context, recs []*feedex.Record) error {
			got = recs
			return nil
		},
	}

	e := rate.NewEnricher(next, 100)
	require.NoError(t, e.Enrich(context.Background(), records))
	assert.Equal(t, records, got)
}

func TestEnricher_PacesRequests(t *testing.T) {
	t.Parallel()

	next := &mock.Enricher{
		EnrichFn: func(ctx context.Context, recs []*feedex.Record) error { return nil },
	}
	e := rate.NewEnricher(next, 100)

	begin := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, e.Enrich(context.Background(), nil))
	}

	// Burst is 1, so the second and third calls each wait one period.
	assert.GreaterOrEqual(t, time.Since(begin), 15*time.Millisecond)
}

func TestEnricher_CanceledContext(t *testing.T) {
	t.Parallel()

	called := false
	next := &mock.Enricher{
		EnrichFn: func(ctx context.Context, recs []*feedex.Record) error {
			called = true
			return nil
		},
	}
	e := rate.NewEnricher(next, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, e.Enrich(ctx, nil))
	assert.False(t, called)
}
