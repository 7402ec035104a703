package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/staffdir/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	e := &crawl.Enumerator{
		Searcher:   deps.Searcher,
		Writer:     deps.Writer,
		MaxResults: deps.Profile.MaxResults,
		Seen:       deps.Seen,
	}

	result, err := e.Enumerate(deps.Ctx, strings.ToUpper(c.Prefix), func(ev crawl.ProgressEvent) {
		fmt.Fprintln(deps.Stdout, crawl.FormatProgress(ev))
	})

	if deps.Sink != nil {
		if closeErr := deps.Sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to finish output: %w", closeErr)
		}
	}

	if err != nil {
		if result != nil {
			fmt.Fprintf(deps.Stderr, "Stopped after %d queries. Wrote %d entries to '%s'\n",
				result.Queries, result.Total, c.Output)
		}
		return err
	}

	if result.Overlaps > 0 {
		fmt.Fprintf(deps.Stderr, "Warning: %d entries appeared under more than one prefix\n", result.Overlaps)
	}
	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result.Total, c.Output))

	return nil
}
