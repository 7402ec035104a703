package mock

import "github.com/fwojciec/staffdir"

var _ staffdir.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of staffdir.Extractor.
type Extractor struct {
	ExtractFn     func(html string) ([]*staffdir.Contact, error)
	ExtractPageFn func(html string) (*staffdir.Page, error)
}

func (e *Extractor) Extract(html string) ([]*staffdir.Contact, error) {
	return e.ExtractFn(html)
}

func (e *Extractor) ExtractPage(html string) (*staffdir.Page, error) {
	return e.ExtractPageFn(html)
}
