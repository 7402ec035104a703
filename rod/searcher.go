// Package rod implements staffdir.Searcher by driving a directory's
// search form in headless Chrome.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/staffdir"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultSearchTimeout bounds one query from opening the search page to
// reading the results.
const DefaultSearchTimeout = 60 * time.Second

var _ staffdir.Searcher = (*Searcher)(nil)

// Searcher types a prefix into the profile's search field, submits the
// form and extracts the results page.
type Searcher struct {
	manager   *BrowserManager
	profile   *staffdir.Profile
	extractor staffdir.Extractor
	timeout   time.Duration
	newWindow bool
	closed    atomic.Bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithSearchTimeout sets the per-query timeout. Zero disables it.
func WithSearchTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithSameWindow submits the form in the search tab instead of
// shift-clicking the button to open the results in a new window.
func WithSameWindow() Option {
	return func(s *Searcher) {
		s.newWindow = false
	}
}

// NewSearcher creates a Searcher that opens pages from manager.
// The caller keeps ownership of manager and closes it after the Searcher.
func NewSearcher(manager *BrowserManager, profile *staffdir.Profile, extractor staffdir.Extractor, opts ...Option) *Searcher {
	s := &Searcher{
		manager:   manager,
		profile:   profile,
		extractor: extractor,
		timeout:   DefaultSearchTimeout,
		newWindow: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs one query and returns the extracted records.
func (s *Searcher) Search(ctx context.Context, prefix string) ([]*staffdir.Contact, error) {
	if s.closed.Load() {
		return nil, staffdir.Errorf(staffdir.EINVALID, "searcher closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	html, err := s.fetch(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return s.extractor.Extract(html)
}

// Close stops the Searcher from accepting queries. It does not close the
// BrowserManager. Close is safe to call multiple times.
func (s *Searcher) Close() error {
	s.closed.Store(true)
	return nil
}

// fetch returns the HTML of the results page for prefix.
func (s *Searcher) fetch(ctx context.Context, prefix string) (string, error) {
	page, err := s.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(s.profile.URL); err != nil {
		return "", fmt.Errorf("opening search page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading search page: %w", err)
	}

	field, err := page.Element(s.profile.SearchField)
	if err != nil {
		return "", fmt.Errorf("finding search field %q: %w", s.profile.SearchField, err)
	}
	if err := field.Input(prefix); err != nil {
		return "", fmt.Errorf("typing prefix: %w", err)
	}

	button, err := page.Element(s.profile.SearchButton)
	if err != nil {
		return "", fmt.Errorf("finding search button %q: %w", s.profile.SearchButton, err)
	}

	if s.newWindow {
		return submitNewWindow(ctx, page, button)
	}
	return submitSameWindow(page, button)
}

// submitSameWindow clicks the button and waits for the tab to navigate.
func submitSameWindow(page *rod.Page, button *rod.Element) (string, error) {
	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", fmt.Errorf("submitting search: %w", err)
	}
	wait()
	return page.HTML()
}

// submitNewWindow shift-clicks the button and reads the window it opens.
func submitNewWindow(ctx context.Context, page *rod.Page, button *rod.Element) (string, error) {
	wait := page.WaitOpen()

	if err := page.Keyboard.Press(input.ShiftLeft); err != nil {
		return "", fmt.Errorf("holding shift: %w", err)
	}
	err := button.Click(proto.InputMouseButtonLeft, 1)
	_ = page.Keyboard.Release(input.ShiftLeft)
	if err != nil {
		return "", fmt.Errorf("submitting search: %w", err)
	}

	results, err := wait()
	if err != nil {
		return "", fmt.Errorf("waiting for results window: %w", err)
	}
	defer results.Close()

	results = results.Context(ctx)
	if err := results.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading results: %w", err)
	}
	return results.HTML()
}
