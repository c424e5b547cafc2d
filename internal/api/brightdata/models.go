package brightdata

// QueryInput is one row of the batched scrape request. RequestID is an opaque
// identifier assigned at query-compile time; the provider echoes it back on
// every listing the query discovers.
type QueryInput struct {
	URL       string `json:"url"`
	RequestID string `json:"request_id"`
}

type scrapeRequest struct {
	Input []QueryInput `json:"input"`
}

// DiscoveryInput is the provider's verbatim echo of the query row that
// produced a listing.
type DiscoveryInput struct {
	URL       string `json:"url"`
	RequestID string `json:"request_id"`
}

// Listing is a single scraped job posting. It is a per-run wire type and is
// never persisted directly.
type Listing struct {
	URL            string  `json:"url"`
	PostingID      string  `json:"job_posting_id"`
	Title          string  `json:"job_title"`
	CompanyName    string  `json:"company_name"`
	CompanyURL     *string `json:"company_url"`
	Location       string  `json:"job_location"`
	Summary        string  `json:"job_summary"`
	Seniority      *string `json:"job_seniority_level"`
	EmploymentType *string `json:"job_employment_type"`

	DiscoveryInput DiscoveryInput `json:"discovery_input"`

	// Set by the provider on rows that failed to scrape. Such rows are
	// dropped during parsing, not surfaced as pipeline errors.
	Error *string `json:"error"`
}

// RequestID returns the echoed query identifier for this listing.
func (l *Listing) RequestID() string {
	return l.DiscoveryInput.RequestID
}
