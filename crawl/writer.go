package crawl

import (
	"context"

	"github.com/fwojciec/staffdir"
)

// MultiWriter returns a BatchWriter that writes each batch to every
// writer in order, stopping at the first error.
func MultiWriter(writers ...staffdir.BatchWriter) staffdir.BatchWriter {
	return multiWriter(writers)
}

type multiWriter []staffdir.BatchWriter

func (m multiWriter) WriteBatch(ctx context.Context, prefix string, batch []*staffdir.Contact) error {
	for _, w := range m {
		if err := w.WriteBatch(ctx, prefix, batch); err != nil {
			return err
		}
	}
	return nil
}
