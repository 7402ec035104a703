package mock

import (
	"context"

	"github.com/fwojciec/staffdir"
)

var _ staffdir.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of staffdir.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, prefix string) ([]*staffdir.Contact, error)
}

func (s *Searcher) Search(ctx context.Context, prefix string) ([]*staffdir.Contact, error) {
	return s.SearchFn(ctx, prefix)
}
