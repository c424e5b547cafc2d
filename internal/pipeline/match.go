package pipeline

import (
	"strings"

	"job-scout/internal/api/brightdata"
	"job-scout/internal/models"
)

// TitleSimilarityThreshold is the minimum title similarity for the fuzzy
// company-page match strategy. Policy, not physics — tune with care.
const TitleSimilarityThreshold = 0.85

// companyTrackingSuffix is the LinkedIn tracking parameter appended to company
// URLs on public job pages.
const companyTrackingSuffix = "?trk=public_jobs_topcard-org-name"

// NormalizeURL canonicalizes a URL for equality checks: lower-case, trim
// surrounding whitespace, strip trailing slashes. Idempotent.
func NormalizeURL(u string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(u)), "/")
}

// CleanCompanyURL strips the LinkedIn tracking suffix from a scraped company
// URL. Returns nil when the listing carries no company URL.
func CleanCompanyURL(raw *string) *string {
	if raw == nil {
		return nil
	}
	cleaned := strings.Replace(*raw, companyTrackingSuffix, "", 1)
	return &cleaned
}

// FindDuplicate decides whether a listing corresponds to one of the user's
// existing job records. Two ordered strategies, first hit wins:
//
//  1. exact normalized posting URL;
//  2. same normalized company URL and title similarity >= the threshold —
//     only evaluated when the listing carries a company URL.
//
// companyURL must already be cleaned. Returns nil when the listing is new.
func FindDuplicate(listing *brightdata.Listing, companyURL *string, existing []*models.Job) *models.Job {
	listingURL := NormalizeURL(listing.URL)
	for _, job := range existing {
		if NormalizeURL(job.PostingURL) == listingURL {
			return job
		}
	}

	if companyURL == nil || *companyURL == "" {
		return nil
	}

	listingCompany := NormalizeURL(*companyURL)
	for _, job := range existing {
		if job.CompanyPage == nil {
			continue
		}
		if NormalizeURL(*job.CompanyPage) != listingCompany {
			continue
		}
		if Similarity(listing.Title, job.JobTitle) >= TitleSimilarityThreshold {
			return job
		}
	}

	return nil
}
