// Package http implements staffdir.Searcher by submitting a directory's
// search form directly, for sites that render results without JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/staffdir"
)

// DefaultTimeout is the default timeout for one search request.
const DefaultTimeout = 30 * time.Second

var _ staffdir.Searcher = (*Searcher)(nil)

// Searcher submits the profile's search form and extracts the response.
// It is safe for concurrent use.
type Searcher struct {
	client    *http.Client
	profile   *staffdir.Profile
	extractor staffdir.Extractor
	method    string
	timeout   time.Duration
	closed    atomic.Bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTimeout sets the timeout for search requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithClient sets the HTTP client. The client's own Timeout is replaced
// by the Searcher's timeout.
func WithClient(c *http.Client) Option {
	return func(s *Searcher) {
		s.client = c
	}
}

// WithMethod sets the form method, http.MethodPost (default) or
// http.MethodGet.
func WithMethod(method string) Option {
	return func(s *Searcher) {
		s.method = method
	}
}

// NewSearcher creates a Searcher for the profile's form action and field.
func NewSearcher(profile *staffdir.Profile, extractor staffdir.Extractor, opts ...Option) *Searcher {
	s := &Searcher{
		profile:   profile,
		extractor: extractor,
		method:    http.MethodPost,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	client := &http.Client{}
	if s.client != nil {
		*client = *s.client
	}
	client.Timeout = s.timeout
	s.client = client

	return s
}

// Search submits prefix in the profile's form field and extracts the
// returned page.
func (s *Searcher) Search(ctx context.Context, prefix string) ([]*staffdir.Contact, error) {
	if s.closed.Load() {
		return nil, staffdir.Errorf(staffdir.EINVALID, "searcher closed")
	}

	req, err := s.newRequest(ctx, prefix)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return s.extractor.Extract(string(body))
}

// Close stops the Searcher from accepting queries. Close is safe to call
// multiple times.
func (s *Searcher) Close() error {
	s.closed.Store(true)
	s.client.CloseIdleConnections()
	return nil
}

func (s *Searcher) newRequest(ctx context.Context, prefix string) (*http.Request, error) {
	switch s.method {
	case http.MethodGet:
		u, err := url.Parse(s.profile.Action())
		if err != nil {
			return nil, staffdir.Errorf(staffdir.EINVALID, "invalid form action: %v", err)
		}
		q := u.Query()
		q.Set(s.profile.FormField, prefix)
		u.RawQuery = q.Encode()
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	case http.MethodPost:
		form := url.Values{s.profile.FormField: {prefix}}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.profile.Action(), strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	default:
		return nil, staffdir.Errorf(staffdir.EINVALID, "unsupported form method %q", s.method)
	}
}
