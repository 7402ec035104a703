package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultsPage wraps table rows in a directory results page.
func resultsPage(rows ...string) string {
	return `<!DOCTYPE html>
<html>
<body>
<h1>Staff Directory Search Results</h1>
<table class="table">
<thead><tr><th>Name</th><th>Contact</th></tr></thead>
<tbody>
` + strings.Join(rows, "\n") + `
</tbody>
</table>
</body>
</html>`
}

const janeDoeRow = `<tr>
	<td>
		<span class="name">Doe,
			Jane <span title=" Office of Administrative Services ">(M1AG)</span></span><br>
		<span class="address">Program Analyst<br>1800 F St NW<br>Washington,   DC 20405</span>
	</td>
	<td>
		<span class="number"><strong>Phone:</strong> 202-555-1234<br>
		<strong>Email:</strong> <a href="mailto:jane.doe@gsa.gov">jane.doe@gsa.gov</a>&nbsp;</span>
	</td>
</tr>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a complete row", func(t *testing.T) {
		t.Parallel()

		contacts, err := goquery.NewExtractor().Extract(resultsPage(janeDoeRow))

		require.NoError(t, err)
		require.Len(t, contacts, 1)

		c := contacts[0]
		assert.Equal(t, "Doe", c.LastName)
		assert.Equal(t, "Jane", c.FirstName)
		require.NotNil(t, c.Department)
		assert.Equal(t, "M1AG", c.Department.Code)
		assert.Equal(t, "Office of Administrative Services", c.Department.Title)
		assert.Equal(t, "Program Analyst", c.Position)
		assert.Equal(t, []string{"1800 F St NW", "Washington, DC 20405"}, c.Address)
		assert.Equal(t, map[string]string{
			"Phone": "202-555-1234",
			"Email": "jane.doe@gsa.gov",
		}, c.Contacts)
	})

	t.Run("preserves row order", func(t *testing.T) {
		t.Parallel()

		page := resultsPage(
			`<tr><td><span class="name">Adams, Amy</span></td></tr>`,
			`<tr><td><span class="name">Baker, Bob</span></td></tr>`,
			`<tr><td><span class="name">Clark, Cal</span></td></tr>`,
		)

		contacts, err := goquery.NewExtractor().Extract(page)

		require.NoError(t, err)
		require.Len(t, contacts, 3)
		assert.Equal(t, "Adams", contacts[0].LastName)
		assert.Equal(t, "Baker", contacts[1].LastName)
		assert.Equal(t, "Clark", contacts[2].LastName)
	})

	t.Run("returns empty result without a table", func(t *testing.T) {
		t.Parallel()

		contacts, err := goquery.NewExtractor().Extract(`<html><body><p>No results</p></body></html>`)

		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})

	t.Run("warning marker overrides a well-formed table", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(resultsPage(janeDoeRow),
			"<h1>", `<div class="alert bg-warning">Search failed, try again.</div><h1>`, 1)

		contacts, err := goquery.NewExtractor().Extract(page)

		require.NoError(t, err)
		assert.Empty(t, contacts)
	})

	t.Run("rows without regions yield empty records", func(t *testing.T) {
		t.Parallel()

		contacts, err := goquery.NewExtractor().Extract(resultsPage(`<tr><td>nothing here</td></tr>`))

		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Empty(t, contacts[0].LastName)
		assert.Nil(t, contacts[0].Department)
		assert.Empty(t, contacts[0].Position)
		assert.Nil(t, contacts[0].Address)
		assert.NotNil(t, contacts[0].Contacts)
		assert.Empty(t, contacts[0].Contacts)
	})

	t.Run("rows are found when tbody is implied", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><table>
<tr><td><span class="name">Doe, Jane</span></td></tr>
</table></body></html>`

		contacts, err := goquery.NewExtractor().Extract(page)

		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, "Doe", contacts[0].LastName)
	})
}

func TestExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("reports ok for a results table", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().ExtractPage(resultsPage(janeDoeRow))

		require.NoError(t, err)
		assert.Equal(t, staffdir.PageOK, page.Status)
		assert.Len(t, page.Contacts, 1)
	})

	t.Run("reports empty without a table", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().ExtractPage(`<html><body></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, staffdir.PageEmpty, page.Status)
		assert.Empty(t, page.Contacts)
	})

	t.Run("reports blocked when the warning marker is present", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().ExtractPage(
			`<html><body><p class="bg-warning">Error</p>` + resultsPage(janeDoeRow) + `</body></html>`)

		require.NoError(t, err)
		assert.Equal(t, staffdir.PageBlocked, page.Status)
		assert.Empty(t, page.Contacts)
	})

	t.Run("uses custom selectors", func(t *testing.T) {
		t.Parallel()

		sel := staffdir.Selectors{
			Warning: "#error",
			Name:    "div.person",
			Address: "div.where",
			Number:  "div.reach",
		}
		html := `<html><body><table><tbody><tr><td>
<div class="person">Roe, Rick</div>
<div class="where">Engineer</div>
<div class="reach">Phone:<br>555-0000</div>
</td></tr></tbody></table></body></html>`

		page, err := goquery.NewExtractor(goquery.WithSelectors(sel)).ExtractPage(html)

		require.NoError(t, err)
		require.Len(t, page.Contacts, 1)
		assert.Equal(t, "Roe", page.Contacts[0].LastName)
		assert.Equal(t, "Engineer", page.Contacts[0].Position)
		assert.Equal(t, map[string]string{"Phone": "555-0000"}, page.Contacts[0].Contacts)
	})
}

func TestExtractor_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		markup    string
		wantLast  string
		wantFirst string
	}{
		{
			name:      "simple last, first",
			markup:    `<span class="name">Doe, Jane</span>`,
			wantLast:  "Doe",
			wantFirst: "Jane",
		},
		{
			name:      "collapses tabs, newlines and spaces",
			markup:    "<span class=\"name\">  Van\tder   Berg ,\n   Anna \n\t Marie  </span>",
			wantLast:  "Van der Berg",
			wantFirst: "Anna Marie",
		},
		{
			name:      "keeps apostrophes and hyphens",
			markup:    `<span class="name">O'Brien-Day, Sean</span>`,
			wantLast:  "O'Brien-Day",
			wantFirst: "Sean",
		},
		{
			name:   "no comma leaves name absent",
			markup: `<span class="name">Jane Doe</span>`,
		},
		{
			name:   "leading element leaves name absent",
			markup: `<span class="name"><b>Doe, Jane</b></span>`,
		},
		{
			name:   "empty name region leaves name absent",
			markup: `<span class="name"></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			contacts, err := goquery.NewExtractor().Extract(resultsPage(`<tr><td>` + tt.markup + `</td></tr>`))

			require.NoError(t, err)
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.wantLast, contacts[0].LastName)
			assert.Equal(t, tt.wantFirst, contacts[0].FirstName)
		})
	}
}

func TestExtractor_Department(t *testing.T) {
	t.Parallel()

	t.Run("strips parentheses from code and trims title", func(t *testing.T) {
		t.Parallel()

		row := `<tr><td><span class="name">Doe, Jane <span title="  Public Buildings  Service ">( PBS )</span></span></td></tr>`

		contacts, err := goquery.NewExtractor().Extract(resultsPage(row))

		require.NoError(t, err)
		require.NotNil(t, contacts[0].Department)
		assert.Equal(t, "PBS", contacts[0].Department.Code)
		assert.Equal(t, "Public Buildings  Service", contacts[0].Department.Title)
	})

	t.Run("absent without a titled element", func(t *testing.T) {
		t.Parallel()

		row := `<tr><td><span class="name">Doe, Jane <span>(PBS)</span></span></td></tr>`

		contacts, err := goquery.NewExtractor().Extract(resultsPage(row))

		require.NoError(t, err)
		assert.Nil(t, contacts[0].Department)
	})
}

func TestExtractor_Address(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		lines        []string
		wantPosition string
		wantAddress  []string
	}{
		{
			name: "no lines",
		},
		{
			name:         "one line is a position",
			lines:        []string{"Director"},
			wantPosition: "Director",
		},
		{
			name:        "two lines are an address",
			lines:       []string{"1800 F St NW", "Washington, DC 20405"},
			wantAddress: []string{"1800 F St NW", "Washington, DC 20405"},
		},
		{
			name:         "three lines are position and address",
			lines:        []string{"Director", "1800 F St NW", "Washington, DC 20405"},
			wantPosition: "Director",
			wantAddress:  []string{"1800 F St NW", "Washington, DC 20405"},
		},
		{
			name:         "four lines keep every address line",
			lines:        []string{"Director", "Room 4000", "1800 F St NW", "Washington, DC 20405"},
			wantPosition: "Director",
			wantAddress:  []string{"Room 4000", "1800 F St NW", "Washington, DC 20405"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Blank lines and stray whitespace between breaks must not count.
			markup := `<span class="address">` + strings.Join(tt.lines, "<br>\n   <br>") + `</span>`

			contacts, err := goquery.NewExtractor().Extract(resultsPage(`<tr><td>` + markup + `</td></tr>`))

			require.NoError(t, err)
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.wantPosition, contacts[0].Position)
			assert.Equal(t, tt.wantAddress, contacts[0].Address)
		})
	}

	t.Run("collapses whitespace within lines", func(t *testing.T) {
		t.Parallel()

		markup := "<span class=\"address\">Senior\n\t   Analyst</span>"

		contacts, err := goquery.NewExtractor().Extract(resultsPage(`<tr><td>` + markup + `</td></tr>`))

		require.NoError(t, err)
		assert.Equal(t, "Senior Analyst", contacts[0].Position)
	})
}

func TestExtractor_Contacts(t *testing.T) {
	t.Parallel()

	extract := func(t *testing.T, markup string) (map[string]string, error) {
		t.Helper()
		contacts, err := goquery.NewExtractor().Extract(resultsPage(`<tr><td>` + markup + `</td></tr>`))
		if err != nil {
			return nil, err
		}
		require.Len(t, contacts, 1)
		return contacts[0].Contacts, nil
	}

	t.Run("pairs labels with the following fragment", func(t *testing.T) {
		t.Parallel()

		got, err := extract(t, `<span class="number">Phone:<br>555-1234<br>Email:<br>a@b.com</span>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Phone": "555-1234", "Email": "a@b.com"}, got)
	})

	t.Run("discards fragments without word characters", func(t *testing.T) {
		t.Parallel()

		got, err := extract(t, `<span class="number">Phone:<br> -- <br>555-1234</span>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Phone": "555-1234"}, got)
	})

	t.Run("discards fragments ending in a semicolon", func(t *testing.T) {
		t.Parallel()

		got, err := extract(t, `<span class="number">Fax:<br>nbsp;<br>555-9999</span>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Fax": "555-9999"}, got)
	})

	t.Run("later duplicate labels win", func(t *testing.T) {
		t.Parallel()

		got, err := extract(t, `<span class="number">Phone:<br>111<br>Phone:<br>222</span>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Phone": "222"}, got)
	})

	t.Run("ignores unlabeled fragments", func(t *testing.T) {
		t.Parallel()

		got, err := extract(t, `<span class="number">Main office<br>Phone:<br>555-1234</span>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Phone": "555-1234"}, got)
	})

	t.Run("empty without a number region", func(t *testing.T) {
		t.Parallel()

		got, err := extract(t, `<span class="name">Doe, Jane</span>`)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("fails on a trailing label", func(t *testing.T) {
		t.Parallel()

		_, err := extract(t, `<span class="number">Phone:<br>555-1234<br>Email:</span>`)

		require.Error(t, err)
		assert.Equal(t, staffdir.EINVALID, staffdir.ErrorCode(err))
		assert.Contains(t, staffdir.ErrorMessage(err), `"Email"`)
		assert.Contains(t, staffdir.ErrorMessage(err), "row 1")
	})
}
