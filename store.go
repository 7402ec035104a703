package staffdir

import "context"

// ContactService represents a service for managing stored contacts.
type ContactService interface {
	BatchWriter

	// FindContacts retrieves contacts matching the filter in the order
	// they were written.
	FindContacts(ctx context.Context, filter ContactFilter) ([]*Contact, error)

	// CountContacts returns the number of contacts matching the filter.
	// Offset and Limit are ignored.
	CountContacts(ctx context.Context, filter ContactFilter) (int, error)
}

// ContactFilter represents a filter for FindContacts.
type ContactFilter struct {
	LastName *string `json:"lastName"` // case-insensitive surname prefix
	Prefix   *string `json:"prefix"`   // query prefix the contact was found under
	Hash     *string `json:"hash"`     // content hash, see ContactService implementations

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
