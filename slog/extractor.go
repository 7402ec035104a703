package slog

import (
	"log/slog"

	"github.com/fwojciec/staffdir"
)

// Ensure LoggingExtractor implements staffdir.Extractor.
var _ staffdir.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and warns about blocked pages,
// which Extract otherwise reports as empty.
type LoggingExtractor struct {
	next   staffdir.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next staffdir.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract extracts the page through ExtractPage so the status can be logged.
func (e *LoggingExtractor) Extract(html string) ([]*staffdir.Contact, error) {
	page, err := e.ExtractPage(html)
	if err != nil {
		return nil, err
	}
	return page.Contacts, nil
}

// ExtractPage delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractPage(html string) (*staffdir.Page, error) {
	page, err := e.next.ExtractPage(html)
	switch {
	case err != nil:
		e.logger.Error("extract", "bytes", len(html), "err", err)
	case page.Status == staffdir.PageBlocked:
		e.logger.Warn("extract", "status", page.Status.String(), "bytes", len(html))
	default:
		e.logger.Debug("extract", "status", page.Status.String(), "count", len(page.Contacts))
	}
	return page, err
}
