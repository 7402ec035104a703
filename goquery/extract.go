// Package goquery implements staffdir.Extractor for directory results
// pages using goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/staffdir"
	"golang.org/x/net/html"
)

var _ staffdir.Extractor = (*Extractor)(nil)

var (
	whitespaceRun = regexp.MustCompile(`[\t\n ]+`)
	wordChar      = regexp.MustCompile(`[\p{L}\p{N}_]`)
	parens        = strings.NewReplacer("(", "", ")", "")
)

// Extractor extracts contact records from directory search results.
// It is safe for concurrent use.
type Extractor struct {
	selectors staffdir.Selectors
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors overrides the selectors used to locate page regions.
func WithSelectors(s staffdir.Selectors) Option {
	return func(e *Extractor) {
		e.selectors = s
	}
}

// NewExtractor creates an Extractor for the GSA directory markup.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{selectors: staffdir.DefaultSelectors()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the contacts on the page in row order.
// A blocked page and a page without a results table both return no contacts.
func (e *Extractor) Extract(htmlDoc string) ([]*staffdir.Contact, error) {
	page, err := e.ExtractPage(htmlDoc)
	if err != nil {
		return nil, err
	}
	return page.Contacts, nil
}

// ExtractPage extracts the page and reports its status.
//
// The warning marker takes precedence over any results table. Rows that
// lack a region yield partial contacts; only a contact label without a
// value fails the page, since that means the markup is not understood.
func (e *Extractor) ExtractPage(htmlDoc string) (*staffdir.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return nil, staffdir.Errorf(staffdir.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &staffdir.Page{Status: staffdir.PageOK, Contacts: []*staffdir.Contact{}}

	if doc.Find(e.selectors.Warning).Length() > 0 {
		page.Status = staffdir.PageBlocked
		return page, nil
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		page.Status = staffdir.PageEmpty
		return page, nil
	}

	var rowErr error
	table.Find("tbody").First().Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		c, err := e.extractRow(row)
		if err != nil {
			rowErr = staffdir.Errorf(staffdir.EINVALID, "row %d: %s", i+1, staffdir.ErrorMessage(err))
			return false
		}
		page.Contacts = append(page.Contacts, c)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return page, nil
}

func (e *Extractor) extractRow(row *goquery.Selection) (*staffdir.Contact, error) {
	c := &staffdir.Contact{Contacts: make(map[string]string)}

	if name := row.Find(e.selectors.Name).First(); name.Length() > 0 {
		extractName(name, c)
	}

	if addr := row.Find(e.selectors.Address).First(); addr.Length() > 0 {
		extractAddress(addr, c)
	}

	if num := row.Find(e.selectors.Number).First(); num.Length() > 0 {
		if err := extractContacts(num, c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// extractName reads "Last, First" from the leading text of the name
// region and the department from a nested element with a title.
func extractName(sel *goquery.Selection, c *staffdir.Contact) {
	if first := sel.Nodes[0].FirstChild; first != nil && first.Type == html.TextNode {
		if last, given, ok := strings.Cut(first.Data, ","); ok {
			c.LastName = cleanName(last)
			c.FirstName = cleanName(given)
		}
	}

	if dept := sel.Find("[title]").First(); dept.Length() > 0 {
		title, _ := dept.Attr("title")
		c.Department = &staffdir.Department{
			Code:  strings.TrimSpace(parens.Replace(dept.Text())),
			Title: strings.TrimSpace(title),
		}
	}
}

// extractAddress decides between position and address lines by the
// number of lines alone; the markup does not say which is which.
// Four or more lines were never seen on the source site but are kept.
func extractAddress(sel *goquery.Selection, c *staffdir.Contact) {
	lines := strippedStrings(sel.Nodes[0])
	for i, line := range lines {
		lines[i] = cleanName(line)
	}

	switch len(lines) {
	case 0:
	case 1:
		c.Position = lines[0]
	case 2:
		c.Address = lines
	default:
		c.Position = lines[0]
		c.Address = lines[1:]
	}
}

// extractContacts pairs every fragment ending in ":" with the fragment
// after it. Repeated labels keep the last value.
func extractContacts(sel *goquery.Selection, c *staffdir.Contact) error {
	var fragments []string
	for _, s := range strippedStrings(sel.Nodes[0]) {
		if wordChar.MatchString(s) && !strings.HasSuffix(s, ";") {
			fragments = append(fragments, s)
		}
	}

	for i, s := range fragments {
		if !strings.HasSuffix(s, ":") {
			continue
		}
		label := strings.TrimSpace(strings.ReplaceAll(s, ":", ""))
		if i+1 >= len(fragments) {
			return staffdir.Errorf(staffdir.EINVALID, "contact label %q has no value", label)
		}
		c.Contacts[label] = strings.TrimSpace(fragments[i+1])
	}
	return nil
}

// strippedStrings returns the trimmed, non-empty text nodes under n in
// document order.
func strippedStrings(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func cleanName(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
