// Package crawl enumerates a staff directory through a search form that
// caps the number of results per query.
package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/staffdir"
)

// Enumerator walks surname prefixes, narrowing any prefix whose result
// count reaches the cap until every query returns a complete batch.
//
// Batches are written as each prefix resolves, in depth-first charset
// order. Nothing is deduplicated across prefixes: prefix-partitioned
// queries are assumed not to overlap. The walk has no depth limit.
type Enumerator struct {
	Searcher staffdir.Searcher
	Writer   staffdir.BatchWriter

	// MaxResults is the per-query cap. A batch of this size or more is
	// treated as truncated. Defaults to staffdir.DefaultMaxResults.
	MaxResults int

	// Seen, if set, counts records that were already written under an
	// earlier prefix. They are still written.
	Seen staffdir.ContactSet
}

// Result holds the outcome of an enumeration.
type Result struct {
	// Total is the number of records written.
	Total int
	// Queries is the number of searches issued.
	Queries int
	// Maxed is the number of prefixes that hit the cap and were narrowed.
	Maxed int
	// Overlaps is the number of written records reported by Seen.
	Overlaps int
}

// ProgressEvent reports the outcome of one query.
type ProgressEvent struct {
	Prefix   string
	Count    int
	Maxed    bool
	Overlaps int
	// Total is the running number of records written so far.
	Total int
}

// ProgressFunc is a callback for reporting enumeration progress.
type ProgressFunc func(event ProgressEvent)

// Enumerate queries every prefix under stem and writes each complete batch.
// An empty stem enumerates the whole directory.
//
// The first search or write error stops the walk; it is returned together
// with the result accumulated up to that point.
func (e *Enumerator) Enumerate(ctx context.Context, stem string, progress ProgressFunc) (*Result, error) {
	if err := validateStem(stem); err != nil {
		return nil, err
	}

	maxResults := e.MaxResults
	if maxResults <= 0 {
		maxResults = staffdir.DefaultMaxResults
	}

	result := &Result{}
	frontier := NewFrontier()
	frontier.Expand(stem)

	for {
		prefix, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Queries++
		batch, err := e.Searcher.Search(ctx, prefix)
		if err != nil {
			return result, fmt.Errorf("search %q: %w", prefix, err)
		}

		event := ProgressEvent{Prefix: prefix, Count: len(batch)}

		if len(batch) >= maxResults {
			result.Maxed++
			event.Maxed = true
			frontier.Expand(prefix)
		} else {
			event.Overlaps = e.overlaps(batch)
			if err := e.Writer.WriteBatch(ctx, prefix, batch); err != nil {
				return result, fmt.Errorf("write batch %q: %w", prefix, err)
			}
			result.Total += len(batch)
			result.Overlaps += event.Overlaps
		}

		event.Total = result.Total
		if progress != nil {
			progress(event)
		}
	}

	return result, nil
}

// overlaps counts records in batch that Seen already holds, then adds them.
func (e *Enumerator) overlaps(batch []*staffdir.Contact) int {
	if e.Seen == nil {
		return 0
	}
	var n int
	for _, c := range batch {
		if e.Seen.Test(c) {
			n++
		}
		e.Seen.Add(c)
	}
	return n
}

// validateStem checks that stem could have been produced by the walk itself.
func validateStem(stem string) error {
	for i, r := range stem {
		cs := staffdir.ExtendedLetters
		if i == 0 {
			cs = staffdir.Letters
		}
		if !strings.ContainsRune(cs, r) {
			return staffdir.Errorf(staffdir.EINVALID, "invalid prefix %q: unexpected %q", stem, r)
		}
	}
	return nil
}
