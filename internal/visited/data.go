package visited

import "time"

type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Record is a durable entry in the Visited Store: one canonical URL, the
// time its terminal status was recorded, and that status. Every started URL reaches
// exactly one terminal Record before the crawl exits.
type Record struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
}

// ClaimOutcome is the result of Store.Claim.
type ClaimOutcome int

const (
	New ClaimOutcome = iota
	Seen
)
