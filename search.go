package staffdir

import "context"

// Searcher runs one directory query.
// Implementations fetch the results page for the prefix, apply an
// Extractor, and return the records in page order.
type Searcher interface {
	Search(ctx context.Context, prefix string) ([]*Contact, error)
}

// SearchFunc adapts an ordinary function to the Searcher interface.
type SearchFunc func(ctx context.Context, prefix string) ([]*Contact, error)

// Search calls f(ctx, prefix).
func (f SearchFunc) Search(ctx context.Context, prefix string) ([]*Contact, error) {
	return f(ctx, prefix)
}

// Extractor turns a search results page into contact records.
type Extractor interface {
	// Extract returns the records on the page in row order.
	// Blocked and empty pages both yield no records.
	Extract(html string) ([]*Contact, error)

	// ExtractPage is like Extract but reports why a page had no records.
	ExtractPage(html string) (*Page, error)
}

// BatchWriter is an append-only destination for resolved batches.
// WriteBatch is called once per resolved prefix, in traversal order.
type BatchWriter interface {
	WriteBatch(ctx context.Context, prefix string, batch []*Contact) error
}

// ContactSet remembers contacts that have already been emitted.
type ContactSet interface {
	// Add records the contact.
	Add(c *Contact)

	// Test reports whether the contact may have been added before.
	// False positives are possible; false negatives are not.
	Test(c *Contact) bool
}
