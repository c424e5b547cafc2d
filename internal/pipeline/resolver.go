package pipeline

import (
	"time"

	"job-scout/internal/models"
)

// Reactivation thresholds: a Closed record only comes back as Bookmarked when
// every carried score is still this strong.
const (
	ReactivateCultureMin        = 60
	ReactivateExperienceMin     = 70
	ReactivatePrioritisationMin = 70
)

// RepostCooldown is how long after the application date a duplicate listing
// is taken as a genuine re-posting rather than the same ad still running.
const RepostCooldown = 7 * 24 * time.Hour

// Action is what the pipeline does with one scraped listing.
type Action int

const (
	// ActionInsertNew creates a fresh record with status Review.
	ActionInsertNew Action = iota
	// ActionReactivate flips the matched Closed record back to Bookmarked.
	ActionReactivate
	// ActionInsertReposted creates a new Reposted record carrying the matched
	// record's analysis forward.
	ActionInsertReposted
	// ActionSkip discards the listing.
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionInsertNew:
		return "insert_new"
	case ActionReactivate:
		return "reactivate"
	case ActionInsertReposted:
		return "insert_reposted"
	case ActionSkip:
		return "skip"
	}
	return "unknown"
}

// Decision pairs the chosen action with the matched record it applies to
// (nil for ActionInsertNew).
type Decision struct {
	Action   Action
	Existing *models.Job
}

// Resolve is the reconciliation decision table, keyed on whether the listing
// matched, the matched record's status, its carried scores, and how stale the
// application date is. Nil scores read as zero, and a nil application date is
// never repost-eligible.
func Resolve(existing *models.Job, now time.Time) Decision {
	if existing == nil {
		return Decision{Action: ActionInsertNew}
	}

	switch {
	case existing.Status == models.StatusClosed:
		if intOrZero(existing.CompanyCultureRate) >= ReactivateCultureMin &&
			intOrZero(existing.ExperienceMatchRate) >= ReactivateExperienceMin &&
			intOrZero(existing.PrioritisationScore) >= ReactivatePrioritisationMin {
			return Decision{Action: ActionReactivate, Existing: existing}
		}
		return Decision{Action: ActionSkip, Existing: existing}

	case models.IsRepostable(existing.Status):
		if existing.ApplicationDate != nil &&
			now.Sub(*existing.ApplicationDate) > RepostCooldown {
			return Decision{Action: ActionInsertReposted, Existing: existing}
		}
		return Decision{Action: ActionSkip, Existing: existing}

	default:
		// Bookmarked, Review, Interested, Reposted, Unfit, Referred,
		// Followed-Up, 4th Stage, Offered, Declined, Signed
		return Decision{Action: ActionSkip, Existing: existing}
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
