package main

import (
	"fmt"

	"github.com/fwojciec/staffdir"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := staffdir.ContactFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Last != "" {
		filter.LastName = &c.Last
	}
	if c.Prefix != "" {
		filter.Prefix = &c.Prefix
	}

	if c.Count {
		n, err := deps.Contacts.CountContacts(deps.Ctx, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, n)
		return nil
	}

	contacts, err := deps.Contacts.FindContacts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffdir.ErrorMessage(err))
		return err
	}

	if len(contacts) == 0 {
		fmt.Fprintln(deps.Stdout, "No contacts found. Use 'staffdir crawl --db' to store some.")
		return nil
	}

	for _, ct := range contacts {
		dept := ""
		if ct.Department != nil {
			dept = ct.Department.Code
		}
		fmt.Fprintf(deps.Stdout, "%s, %s  %s  %s\n", ct.LastName, ct.FirstName, dept, ct.Position)
	}

	return nil
}
