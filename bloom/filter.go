// Package bloom provides contact overlap detection using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/staffdir"
)

var _ staffdir.ContactSet = (*Filter)(nil)

// Filter wraps a Bloom filter keyed by staffdir.Contact.Key.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected contacts
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a contact to the filter.
func (f *Filter) Add(c *staffdir.Contact) {
	f.f.AddString(c.Key())
}

// Test returns true if the contact might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(c *staffdir.Contact) bool {
	return f.f.TestString(c.Key())
}

// EstimatedCount returns the approximate number of contacts in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
