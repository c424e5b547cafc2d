package models

import "fmt"

// Status is the lifecycle state of a tracked job. The set is closed: every
// value the pipeline reads or writes is one of the constants below.
type Status string

const (
	StatusReview     Status = "Review"
	StatusBookmarked Status = "Bookmarked"
	StatusInterested Status = "Interested"
	StatusReposted   Status = "Reposted"
	StatusUnfit      Status = "Unfit"
	StatusApplied    Status = "Applied"
	StatusReferred   Status = "Referred"
	StatusFollowedUp Status = "Followed-Up"
	Status1stStage   Status = "1st Stage"
	Status2ndStage   Status = "2nd Stage"
	Status3rdStage   Status = "3rd Stage"
	Status4thStage   Status = "4th Stage"
	StatusOffered    Status = "Offered"
	StatusDeclined   Status = "Declined"
	StatusRejected   Status = "Rejected"
	StatusSigned     Status = "Signed"
	StatusClosed     Status = "Closed"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{
	StatusReview, StatusBookmarked, StatusInterested, StatusReposted,
	StatusUnfit, StatusApplied, StatusReferred, StatusFollowedUp,
	Status1stStage, Status2ndStage, Status3rdStage, Status4thStage,
	StatusOffered, StatusDeclined, StatusRejected, StatusSigned,
	StatusClosed,
}

// RepostableStatuses are the states in which a re-scraped duplicate may come
// back as a Reposted record once the application has gone cold.
var RepostableStatuses = []Status{
	StatusRejected, StatusApplied, Status1stStage, Status2ndStage, Status3rdStage,
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	for _, v := range AllStatuses {
		if st == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// IsRepostable reports whether s is one of the repost-eligible states.
func IsRepostable(s Status) bool {
	for _, v := range RepostableStatuses {
		if s == v {
			return true
		}
	}
	return false
}
