package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/fs"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	page, err := deps.Extractor.ExtractPage(string(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	switch page.Status {
	case staffdir.PageBlocked:
		fmt.Fprintln(deps.Stderr, "Page carries the server's warning marker; no contacts extracted.")
	case staffdir.PageEmpty:
		fmt.Fprintln(deps.Stderr, "Page has no results table.")
	}

	if c.Names {
		for _, contact := range page.Contacts {
			fmt.Fprintln(deps.Stdout, contact.LastName)
		}
		return nil
	}

	w := fs.NewWriter(deps.Stdout, fs.FormatArray)
	if err := w.WriteBatch(deps.Ctx, "", page.Contacts); err != nil {
		return err
	}
	return w.Close()
}
