package mock

import (
	"context"

	"github.com/fwojciec/staffdir"
)

var _ staffdir.ContactService = (*ContactService)(nil)

// ContactService is a mock implementation of staffdir.ContactService.
type ContactService struct {
	WriteBatchFn    func(ctx context.Context, prefix string, batch []*staffdir.Contact) error
	FindContactsFn  func(ctx context.Context, filter staffdir.ContactFilter) ([]*staffdir.Contact, error)
	CountContactsFn func(ctx context.Context, filter staffdir.ContactFilter) (int, error)
}

func (s *ContactService) WriteBatch(ctx context.Context, prefix string, batch []*staffdir.Contact) error {
	return s.WriteBatchFn(ctx, prefix, batch)
}

func (s *ContactService) FindContacts(ctx context.Context, filter staffdir.ContactFilter) ([]*staffdir.Contact, error) {
	return s.FindContactsFn(ctx, filter)
}

func (s *ContactService) CountContacts(ctx context.Context, filter staffdir.ContactFilter) (int, error) {
	return s.CountContactsFn(ctx, filter)
}
