package models

import (
	"time"

	"github.com/lib/pq"
)

// JobSearch is a user-defined saved search. Fields are mutated by the user;
// only LastRunAt is written by the pipeline.
type JobSearch struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	Label           string         `db:"label"`
	Keyword         string         `db:"keyword"`
	Location        string         `db:"location"`
	ExperienceLevel pq.StringArray `db:"experience_level"`
	WorkModel       pq.StringArray `db:"work_model"`
	JobType         pq.StringArray `db:"job_type"`
	IsActive        bool           `db:"is_active"`
	LastRunAt       *time.Time     `db:"last_run_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// UserProfile carries the keyword preferences the pipeline filters against.
// Only UnwantedKeywords are read here; WantedKeywords belong to the scoring jobs.
type UserProfile struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	WantedKeywords   pq.StringArray `db:"wanted_keywords"`
	UnwantedKeywords pq.StringArray `db:"unwanted_keywords"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// LinkedIn search facet codes. Preference values with no known code are
// silently omitted from the compiled query so that partial or unsupported
// selections degrade gracefully instead of failing the whole search.
var ExperienceLevelCodes = map[string]string{
	"Internship":       "1",
	"Entry level":      "2",
	"Associate":        "3",
	"Mid-Senior level": "4",
	"Director":         "5",
	"Executive":        "6",
}

var WorkModelCodes = map[string]string{
	"On-site": "1",
	"Remote":  "2",
	"Hybrid":  "3",
}

var JobTypeCodes = map[string]string{
	"Full-time":  "F",
	"Part-time":  "P",
	"Contract":   "C",
	"Temporary":  "T",
	"Internship": "I",
	"Volunteer":  "V",
	"Other":      "O",
}
