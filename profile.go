package staffdir

// Selectors locates the regions of a results page.
type Selectors struct {
	// Warning matches the server's error marker.
	Warning string `yaml:"warning"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Number  string `yaml:"number"`
}

// DefaultSelectors returns the selectors for the GSA staff directory.
func DefaultSelectors() Selectors {
	return Selectors{
		Warning: ".bg-warning",
		Name:    "span.name",
		Address: "span.address",
		Number:  "span.number",
	}
}

// Profile describes a directory site and how to query it.
type Profile struct {
	// URL is the search page opened by the browser searcher.
	URL string `yaml:"url"`

	// SearchField and SearchButton are CSS selectors on the search page.
	SearchField  string `yaml:"search_field"`
	SearchButton string `yaml:"search_button"`

	// FormAction and FormField are used when posting the search form
	// directly over HTTP. FormAction defaults to URL.
	FormAction string `yaml:"form_action"`
	FormField  string `yaml:"form_field"`

	// MaxResults is the per-query result cap of the site.
	MaxResults int `yaml:"max_results"`

	Selectors Selectors `yaml:"selectors"`
}

// DefaultProfile returns the profile for the GSA staff directory.
func DefaultProfile() *Profile {
	return &Profile{
		URL:          "https://gsa.gov/portal/staffDirectory/searchStaffDirectory",
		SearchField:  "#lastName",
		SearchButton: ".gsa-primary-btn",
		FormField:    "lastName",
		MaxResults:   DefaultMaxResults,
		Selectors:    DefaultSelectors(),
	}
}

// Action returns the URL the search form posts to.
func (p *Profile) Action() string {
	if p.FormAction != "" {
		return p.FormAction
	}
	return p.URL
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "profile URL required")
	}
	if p.SearchField == "" || p.SearchButton == "" {
		return Errorf(EINVALID, "profile search field and button selectors required")
	}
	if p.FormField == "" {
		return Errorf(EINVALID, "profile form field required")
	}
	if p.MaxResults <= 0 {
		return Errorf(EINVALID, "profile max results must be positive, got %d", p.MaxResults)
	}
	s := p.Selectors
	if s.Warning == "" || s.Name == "" || s.Address == "" || s.Number == "" {
		return Errorf(EINVALID, "profile selectors must not be empty")
	}
	return nil
}
