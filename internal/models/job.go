package models

import "time"

// Job is the persisted, user-owned application-tracking record.
// Match rates and insights are produced by the scoring jobs; the pipeline
// only ever copies them forward when creating a Reposted record.
type Job struct {
	ID                      string     `db:"id"`
	UserID                  string     `db:"user_id"`
	CompanyID               *string    `db:"company_id"`
	JobTitle                string     `db:"job_title"`
	PostingURL              string     `db:"posting_url"`
	Company                 string     `db:"company"`
	CompanyPage             *string    `db:"company_page"`
	Status                  Status     `db:"status"`
	StatusReason            *string    `db:"status_reason"`
	PrioritisationScore     *int       `db:"prioritisation_score"`
	OverallMatchRate        *int       `db:"overall_match_rate"`
	ExperienceMatchRate     *int       `db:"experience_match_rate"`
	ExperienceMatchInsights *string    `db:"experience_match_insights"`
	JobMatchRate            *int       `db:"job_match_rate"`
	JobMatchInsights        *string    `db:"job_match_insights"`
	JobDescription          *string    `db:"job_description"`
	JobDescriptionFull      *string    `db:"job_description_full"`
	TailoredCoveringLetter  *string    `db:"tailored_covering_letter"`
	SalaryExpectation       *int       `db:"salary_expectation"`
	ApplicationDate         *time.Time `db:"application_date"`
	LastLiveCheck           *time.Time `db:"last_live_check"`
	IsLive                  bool       `db:"is_live"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`

	// Joined from the companies table when records are preloaded for a run.
	CompanyCultureRate *int `db:"cultural_match_rate"`
}

// Company is the per-user company record. Uniqueness on (user_id, name) is a
// pipeline invariant, not a database constraint.
type Company struct {
	ID                    string    `db:"id"`
	UserID                string    `db:"user_id"`
	Name                  string    `db:"name"`
	CompanyPage           string    `db:"company_page"`
	CulturalMatchRate     *int      `db:"cultural_match_rate"`
	CulturalMatchInsights *string   `db:"cultural_match_insights"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}
