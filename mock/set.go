package mock

import "github.com/fwojciec/staffdir"

var _ staffdir.ContactSet = (*ContactSet)(nil)

// ContactSet is a mock implementation of staffdir.ContactSet.
type ContactSet struct {
	AddFn  func(c *staffdir.Contact)
	TestFn func(c *staffdir.Contact) bool
}

func (f *ContactSet) Add(c *staffdir.Contact) {
	f.AddFn(c)
}

func (f *ContactSet) Test(c *staffdir.Contact) bool {
	return f.TestFn(c)
}
