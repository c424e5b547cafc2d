package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"job-scout/internal/models"
)

// searchBaseURL pins the compiled query to listings posted within the last
// 24 hours (f_TPR=r86400).
const searchBaseURL = "https://www.linkedin.com/jobs/search/?f_TPR=r86400"

// CompiledQuery is one unique provider query plus every saved search that
// compiled to it. RequestID is assigned here and echoed back verbatim by the
// provider, so results are correlated by identifier rather than by comparing
// URLs structurally.
type CompiledQuery struct {
	RequestID string
	URL       string
	Searches  []*models.JobSearch
}

// BuildSearchURL turns one saved search into a LinkedIn search URL. Preference
// values without a known facet code are silently omitted so a partially
// unsupported selection still produces a usable query.
func BuildSearchURL(search *models.JobSearch) string {
	var b strings.Builder
	b.WriteString(searchBaseURL)

	if search.Keyword != "" {
		// quoted for exact-phrase matching
		fmt.Fprintf(&b, "&keywords=%s", url.QueryEscape(`"`+search.Keyword+`"`))
	}

	if search.Location != "" {
		fmt.Fprintf(&b, "&location=%s", url.QueryEscape(search.Location))
	}

	if codes := mapCodes(search.ExperienceLevel, models.ExperienceLevelCodes); len(codes) > 0 {
		fmt.Fprintf(&b, "&f_E=%s", strings.Join(codes, ","))
	}

	if codes := mapCodes(search.WorkModel, models.WorkModelCodes); len(codes) > 0 {
		fmt.Fprintf(&b, "&f_WT=%s", strings.Join(codes, ","))
	}

	if codes := mapCodes(search.JobType, models.JobTypeCodes); len(codes) > 0 {
		fmt.Fprintf(&b, "&f_JT=%s", strings.Join(codes, ","))
	}

	return b.String()
}

func mapCodes(values []string, table map[string]string) []string {
	var codes []string
	for _, v := range values {
		if code, ok := table[strings.TrimSpace(v)]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// CompileQueries builds one URL per search and merges searches sharing an
// identical URL into a single query, so the batched provider call carries no
// duplicate work. Each unique query gets a fresh opaque request id.
func CompileQueries(searches []*models.JobSearch) []*CompiledQuery {
	byURL := make(map[string]*CompiledQuery)
	var ordered []*CompiledQuery

	for _, search := range searches {
		u := BuildSearchURL(search)
		query, ok := byURL[u]
		if !ok {
			query = &CompiledQuery{
				RequestID: uuid.NewString(),
				URL:       u,
			}
			byURL[u] = query
			ordered = append(ordered, query)
		}
		query.Searches = append(query.Searches, search)
	}

	return ordered
}

// Users returns the distinct owning users of this query's searches, in the
// order their searches appear. Every one of them gets the query's results.
func (q *CompiledQuery) Users() []string {
	seen := make(map[string]bool, len(q.Searches))
	var users []string
	for _, s := range q.Searches {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			users = append(users, s.UserID)
		}
	}
	return users
}
