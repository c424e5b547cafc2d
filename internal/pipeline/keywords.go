package pipeline

import (
	"strings"

	"job-scout/internal/api/brightdata"
)

// MatchUnwantedKeyword checks a listing against the user's unwanted keyword
// list. Keywords are matched case-insensitively against the title, summary and
// company name, in that order; the first hit is returned so the caller can
// discard the listing before any company or job write happens. An empty return
// means the listing may proceed.
func MatchUnwantedKeyword(listing *brightdata.Listing, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}

	title := strings.ToLower(listing.Title)
	summary := strings.ToLower(listing.Summary)
	company := strings.ToLower(listing.CompanyName)

	for _, raw := range keywords {
		keyword := strings.ToLower(strings.TrimSpace(raw))
		if keyword == "" {
			continue
		}
		if strings.Contains(title, keyword) ||
			strings.Contains(summary, keyword) ||
			strings.Contains(company, keyword) {
			return keyword
		}
	}

	return ""
}
