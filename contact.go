package staffdir

import (
	"sort"
	"strings"
)

// Contact represents one staff directory entry.
//
// Every field except Contacts is optional and omitted from JSON when
// absent. A Contact is built in full by one extraction pass and is not
// modified afterwards.
type Contact struct {
	FirstName  string            `json:"firstname,omitempty"`
	LastName   string            `json:"lastname,omitempty"`
	Department *Department       `json:"department,omitempty"`
	Position   string            `json:"position,omitempty"`
	Address    []string          `json:"address,omitempty"`
	Contacts   map[string]string `json:"contacts"`
}

// Department is the organizational unit embedded in a directory name field.
type Department struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Key returns a string identifying the contact's content.
// Two contacts with equal keys carry identical fields.
func (c *Contact) Key() string {
	const sep = "\x1f"

	var b strings.Builder
	b.WriteString(c.LastName)
	b.WriteString(sep)
	b.WriteString(c.FirstName)
	b.WriteString(sep)
	if c.Department != nil {
		b.WriteString(c.Department.Code)
		b.WriteString(sep)
		b.WriteString(c.Department.Title)
	}
	b.WriteString(sep)
	b.WriteString(c.Position)
	b.WriteString(sep)
	b.WriteString(strings.Join(c.Address, "\n"))

	labels := make([]string, 0, len(c.Contacts))
	for label := range c.Contacts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		b.WriteString(sep)
		b.WriteString(label)
		b.WriteString("=")
		b.WriteString(c.Contacts[label])
	}
	return b.String()
}

// PageStatus classifies a search results page.
type PageStatus int

const (
	// PageOK means a results table was found and its rows extracted.
	PageOK PageStatus = iota
	// PageEmpty means the page has no results table.
	PageEmpty
	// PageBlocked means the page carries the server's warning marker.
	// The marker wins over any table also present on the page.
	PageBlocked
)

// String returns a lowercase name for the status.
func (s PageStatus) String() string {
	switch s {
	case PageOK:
		return "ok"
	case PageEmpty:
		return "empty"
	case PageBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Page is the result of extracting one search results page.
type Page struct {
	Status   PageStatus
	Contacts []*Contact
}
