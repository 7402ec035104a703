package mock

import (
	"context"

	"github.com/fwojciec/staffdir"
)

var _ staffdir.BatchWriter = (*BatchWriter)(nil)

// BatchWriter is a mock implementation of staffdir.BatchWriter.
type BatchWriter struct {
	WriteBatchFn func(ctx context.Context, prefix string, batch []*staffdir.Contact) error
}

func (w *BatchWriter) WriteBatch(ctx context.Context, prefix string, batch []*staffdir.Contact) error {
	return w.WriteBatchFn(ctx, prefix, batch)
}
