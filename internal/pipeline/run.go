package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-scout/internal/api/brightdata"
	"job-scout/internal/models"
)

// SearchStore loads saved searches and stamps run completion.
type SearchStore interface {
	GetActiveSearches(ctx context.Context) ([]*models.JobSearch, error)
	StampLastRun(ctx context.Context, searchIDs []string, at time.Time) error
}

// ProfileStore reads per-user keyword preferences.
type ProfileStore interface {
	GetUnwantedKeywords(ctx context.Context, userIDs []string) (map[string][]string, error)
}

// CompanyStore upserts company records keyed on (user, exact name).
type CompanyStore interface {
	GetCompanyByName(ctx context.Context, userID, name string) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) error
}

// JobStore reads and writes tracked job records.
type JobStore interface {
	GetJobsForUser(ctx context.Context, userID string) ([]*models.Job, error)
	InsertJob(ctx context.Context, job *models.Job) error
	UpdateJobStatus(ctx context.Context, jobID string, status models.Status) error
}

// Scraper is the external listing provider.
type Scraper interface {
	Scrape(ctx context.Context, queries []brightdata.QueryInput) ([]brightdata.Listing, error)
}

// Lease guards against overlapping runs and meters provider calls.
type Lease interface {
	AcquireRunLease(ctx context.Context) (bool, error)
	ReleaseRunLease(ctx context.Context) error
	CheckProviderRateLimit(ctx context.Context) error
}

// Summary is the only synchronous feedback a run produces.
type Summary struct {
	SearchesRun int      `json:"searches_run"`
	JobsFound   int      `json:"jobs_found"`
	Inserted    int      `json:"inserted"`
	Reactivated int      `json:"reactivated"`
	Blocked     int      `json:"blocked"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors"`
}

// Runner drives one full discovery run to completion.
type Runner struct {
	searches  SearchStore
	profiles  ProfileStore
	companies CompanyStore
	jobs      JobStore
	scraper   Scraper
	lease     Lease
	logger    *zap.Logger

	// test seam; defaults to time.Now
	now func() time.Time
}

func NewRunner(
	searches SearchStore,
	profiles ProfileStore,
	companies CompanyStore,
	jobs JobStore,
	scraper Scraper,
	lease Lease,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		searches:  searches,
		profiles:  profiles,
		companies: companies,
		jobs:      jobs,
		scraper:   scraper,
		lease:     lease,
		logger:    logger,
		now:       time.Now,
	}
}

// runCache holds each user's existing job records for the duration of one
// run. It is built fresh per invocation and discarded with the run; inserted
// records are appended so a listing returned twice in one response cannot
// produce two live records with the same posting URL.
type runCache struct {
	jobsByUser map[string][]*models.Job
}

func (c *runCache) jobs(userID string) []*models.Job {
	return c.jobsByUser[userID]
}

func (c *runCache) add(job *models.Job) {
	c.jobsByUser[job.UserID] = append(c.jobsByUser[job.UserID], job)
}

// Run executes one discovery run: load searches, compile and dedupe queries,
// one batched scrape, then drive every listing through keyword filtering,
// company resolution, duplicate matching and the status resolver. Listings
// are processed sequentially; a per-listing write failure is recorded and the
// run moves on. Configuration and upstream-provider failures abort the run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	acquired, err := r.lease.AcquireRunLease(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire run lease: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("another run is already in progress")
	}
	defer func() {
		if err := r.lease.ReleaseRunLease(ctx); err != nil {
			r.logger.Warn("failed to release run lease", zap.Error(err))
		}
	}()

	started := r.now()
	summary := &Summary{Errors: []string{}}

	searches, err := r.searches.GetActiveSearches(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active searches: %w", err)
	}
	summary.SearchesRun = len(searches)

	if len(searches) == 0 {
		r.logger.Info("no active searches, nothing to do")
		return summary, nil
	}

	queries := CompileQueries(searches)

	if err := r.lease.CheckProviderRateLimit(ctx); err != nil {
		return nil, fmt.Errorf("provider rate limit: %w", err)
	}

	inputs := make([]brightdata.QueryInput, len(queries))
	queryByRequestID := make(map[string]*CompiledQuery, len(queries))
	for i, q := range queries {
		inputs[i] = brightdata.QueryInput{URL: q.URL, RequestID: q.RequestID}
		queryByRequestID[q.RequestID] = q
	}

	r.logger.Info("dispatching scrape",
		zap.Int("searches", len(searches)),
		zap.Int("unique_queries", len(queries)),
	)

	listings, err := r.scraper.Scrape(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}
	summary.JobsFound = len(listings)

	userIDs := distinctUsers(searches)

	unwanted, err := r.profiles.GetUnwantedKeywords(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load keyword preferences: %w", err)
	}

	cache := &runCache{jobsByUser: make(map[string][]*models.Job, len(userIDs))}
	for _, uid := range userIDs {
		jobs, err := r.jobs.GetJobsForUser(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("preload jobs for user %s: %w", uid, err)
		}
		cache.jobsByUser[uid] = jobs
	}

	for i := range listings {
		listing := &listings[i]

		query, ok := queryByRequestID[listing.RequestID()]
		if !ok {
			// listing does not correlate to any query we sent
			r.logger.Warn("dropping listing with unknown request id",
				zap.String("request_id", listing.RequestID()),
				zap.String("url", listing.URL),
			)
			continue
		}

		for _, userID := range query.Users() {
			r.processListing(ctx, listing, userID, unwanted[userID], cache, summary)
		}
	}

	searchIDs := make([]string, len(searches))
	for i, s := range searches {
		searchIDs[i] = s.ID
	}
	if err := r.searches.StampLastRun(ctx, searchIDs, started); err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("stamp last run: %v", err))
	}

	r.logger.Info("run complete",
		zap.Int("inserted", summary.Inserted),
		zap.Int("reactivated", summary.Reactivated),
		zap.Int("blocked", summary.Blocked),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", len(summary.Errors)),
	)

	return summary, nil
}

// processListing drives one listing for one owning user through the filter,
// company resolver, matcher and status resolver, then applies the decided
// write. Failures are appended to the summary's error list; a company created
// before a failing job write is deliberately left in place.
func (r *Runner) processListing(
	ctx context.Context,
	listing *brightdata.Listing,
	userID string,
	unwantedKeywords []string,
	cache *runCache,
	summary *Summary,
) {
	if keyword := MatchUnwantedKeyword(listing, unwantedKeywords); keyword != "" {
		r.logger.Debug("listing blocked by keyword",
			zap.String("user_id", userID),
			zap.String("title", listing.Title),
			zap.String("keyword", keyword),
		)
		summary.Blocked++
		return
	}

	companyURL := CleanCompanyURL(listing.CompanyURL)

	companyID, err := r.resolveCompany(ctx, userID, listing.CompanyName, companyURL)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", listing.Title, err))
		return
	}

	existing := FindDuplicate(listing, companyURL, cache.jobs(userID))
	decision := Resolve(existing, r.now())

	r.logger.Debug("listing resolved",
		zap.String("user_id", userID),
		zap.String("title", listing.Title),
		zap.String("action", decision.Action.String()),
	)

	switch decision.Action {
	case ActionInsertNew:
		job := r.newJob(listing, userID, companyID, companyURL)
		if err := r.jobs.InsertJob(ctx, job); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", listing.Title, err))
			return
		}
		cache.add(job)
		summary.Inserted++

	case ActionReactivate:
		if err := r.jobs.UpdateJobStatus(ctx, decision.Existing.ID, models.StatusBookmarked); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", listing.Title, err))
			return
		}
		decision.Existing.Status = models.StatusBookmarked
		summary.Reactivated++

	case ActionInsertReposted:
		job := r.newJob(listing, userID, companyID, companyURL)
		job.Status = models.StatusReposted
		copyAnalysis(job, decision.Existing)
		if err := r.jobs.InsertJob(ctx, job); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", listing.Title, err))
			return
		}
		cache.add(job)
		summary.Inserted++

	case ActionSkip:
		summary.Skipped++
	}
}

// resolveCompany upserts the company record by exact (user, name) and returns
// its id. Listings with no company name resolve to no company.
func (r *Runner) resolveCompany(ctx context.Context, userID, name string, companyURL *string) (*string, error) {
	if name == "" {
		return nil, nil
	}

	existing, err := r.companies.GetCompanyByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("look up company %q: %w", name, err)
	}
	if existing != nil {
		return &existing.ID, nil
	}

	company := &models.Company{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	if companyURL != nil {
		company.CompanyPage = *companyURL
	}

	if err := r.companies.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("create company %q: %w", name, err)
	}

	r.logger.Debug("company created",
		zap.String("user_id", userID),
		zap.String("name", name),
	)

	return &company.ID, nil
}

func (r *Runner) newJob(listing *brightdata.Listing, userID string, companyID, companyURL *string) *models.Job {
	job := &models.Job{
		ID:          uuid.NewString(),
		UserID:      userID,
		CompanyID:   companyID,
		JobTitle:    listing.Title,
		PostingURL:  listing.URL,
		Company:     listing.CompanyName,
		CompanyPage: companyURL,
		Status:      models.StatusReview,
		IsLive:      true,
	}
	if listing.Summary != "" {
		summary := listing.Summary
		job.JobDescriptionFull = &summary
	}
	return job
}

// copyAnalysis carries the previous record's externally computed analysis
// forward verbatim onto a Reposted record.
func copyAnalysis(dst, src *models.Job) {
	dst.JobMatchRate = src.JobMatchRate
	dst.JobMatchInsights = src.JobMatchInsights
	dst.ExperienceMatchRate = src.ExperienceMatchRate
	dst.ExperienceMatchInsights = src.ExperienceMatchInsights
	dst.JobDescription = src.JobDescription
	dst.TailoredCoveringLetter = src.TailoredCoveringLetter
	dst.SalaryExpectation = src.SalaryExpectation
	dst.PrioritisationScore = src.PrioritisationScore
}

func distinctUsers(searches []*models.JobSearch) []string {
	seen := make(map[string]bool, len(searches))
	var users []string
	for _, s := range searches {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			users = append(users, s.UserID)
		}
	}
	return users
}
