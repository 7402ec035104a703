package crawl

import (
	"context"

	"github.com/fwojciec/staffdir"
	"golang.org/x/time/rate"
)

var _ staffdir.Searcher = (*ThrottledSearcher)(nil)

// ThrottledSearcher spaces queries to a Searcher using a token bucket.
// Queries remain sequential; the limiter only adds delay between them.
type ThrottledSearcher struct {
	next    staffdir.Searcher
	limiter *rate.Limiter
}

// NewThrottledSearcher wraps next so that at most qps queries run per second,
// with a burst of 1 (no bursting allowed).
func NewThrottledSearcher(next staffdir.Searcher, qps float64) *ThrottledSearcher {
	return &ThrottledSearcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
	}
}

// Search waits for the limiter and delegates to the wrapped Searcher.
// Returns an error if the context is canceled before the wait completes.
func (s *ThrottledSearcher) Search(ctx context.Context, prefix string) ([]*staffdir.Contact, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.Search(ctx, prefix)
}
