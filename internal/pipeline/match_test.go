package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-scout/internal/api/brightdata"
	"job-scout/internal/models"
)

func strptr(s string) *string { return &s }

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://Example.com/Jobs/123/", "https://example.com/jobs/123"},
		{"  https://example.com/jobs///  ", "https://example.com/jobs"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		got := NormalizeURL(tt.in)
		assert.Equal(t, tt.want, got)
		// idempotent
		assert.Equal(t, got, NormalizeURL(got))
	}
}

func TestCleanCompanyURL(t *testing.T) {
	assert.Nil(t, CleanCompanyURL(nil))

	got := CleanCompanyURL(strptr("https://linkedin.com/company/acme?trk=public_jobs_topcard-org-name"))
	require.NotNil(t, got)
	assert.Equal(t, "https://linkedin.com/company/acme", *got)

	plain := CleanCompanyURL(strptr("https://linkedin.com/company/acme"))
	require.NotNil(t, plain)
	assert.Equal(t, "https://linkedin.com/company/acme", *plain)
}

func TestFindDuplicate_ExactURL(t *testing.T) {
	existing := []*models.Job{
		{ID: "j1", PostingURL: "https://example.com/jobs/111/"},
		{ID: "j2", PostingURL: "https://example.com/jobs/222"},
	}
	listing := &brightdata.Listing{URL: "HTTPS://EXAMPLE.COM/jobs/222/", Title: "Anything"}

	got := FindDuplicate(listing, nil, existing)
	require.NotNil(t, got)
	assert.Equal(t, "j2", got.ID)
}

func TestFindDuplicate_FuzzyCompanyAndTitle(t *testing.T) {
	existing := []*models.Job{
		{
			ID:          "j1",
			PostingURL:  "https://example.com/jobs/old",
			JobTitle:    "Senior Product Manager",
			CompanyPage: strptr("https://linkedin.com/company/acme/"),
		},
	}

	// near-identical title on the same company page matches
	near := &brightdata.Listing{
		URL:   "https://example.com/jobs/new",
		Title: "Senior Product Manager ",
	}
	got := FindDuplicate(near, strptr("https://linkedin.com/company/acme"), existing)
	require.NotNil(t, got)
	assert.Equal(t, "j1", got.ID)

	// same company page but a title below the threshold does not match,
	// even when it is plausibly the same role
	far := &brightdata.Listing{
		URL:   "https://example.com/jobs/new",
		Title: "Senior PM",
	}
	assert.Nil(t, FindDuplicate(far, strptr("https://linkedin.com/company/acme"), existing))
}

func TestFindDuplicate_NoCompanyURLSkipsStrategyTwo(t *testing.T) {
	existing := []*models.Job{
		{
			ID:          "j1",
			PostingURL:  "https://example.com/jobs/old",
			JobTitle:    "Senior Product Manager",
			CompanyPage: strptr("https://linkedin.com/company/acme"),
		},
	}
	listing := &brightdata.Listing{
		URL:   "https://example.com/jobs/new",
		Title: "Senior Product Manager",
	}
	assert.Nil(t, FindDuplicate(listing, nil, existing))
}

func TestFindDuplicate_NeverMatchesWhenAllSignalsDiffer(t *testing.T) {
	existing := []*models.Job{
		{
			ID:          "j1",
			PostingURL:  "https://example.com/jobs/old",
			JobTitle:    "Staff Data Scientist",
			CompanyPage: strptr("https://linkedin.com/company/globex"),
		},
	}
	listing := &brightdata.Listing{
		URL:   "https://example.com/jobs/new",
		Title: "Backend Engineer",
	}
	assert.Nil(t, FindDuplicate(listing, strptr("https://linkedin.com/company/acme"), existing))
}

func TestFindDuplicate_ExactURLWinsOverFuzzy(t *testing.T) {
	existing := []*models.Job{
		{
			ID:          "fuzzy",
			PostingURL:  "https://example.com/jobs/other",
			JobTitle:    "Platform Engineer",
			CompanyPage: strptr("https://linkedin.com/company/acme"),
		},
		{
			ID:         "exact",
			PostingURL: "https://example.com/jobs/555",
			JobTitle:   "Platform Engineer",
		},
	}
	listing := &brightdata.Listing{
		URL:   "https://example.com/jobs/555/",
		Title: "Platform Engineer",
	}
	got := FindDuplicate(listing, strptr("https://linkedin.com/company/acme"), existing)
	require.NotNil(t, got)
	assert.Equal(t, "exact", got.ID)
}
