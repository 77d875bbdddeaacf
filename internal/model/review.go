package model

import "time"

// ReviewTrigger identifies which escalation rule fired
type ReviewTrigger string

const (
	TriggerCriticalFalse  ReviewTrigger = "critical_false" // A critical claim resolved false
	TriggerScore50To70    ReviewTrigger = "score_50_70"    // Overall score in [50,70)
	TriggerHighUnknown    ReviewTrigger = "high_unknown"   // Unknown-claim ratio >= 50%
	TriggerSensitiveTopic ReviewTrigger = "sensitive_topic"
	TriggerNewVenue       ReviewTrigger = "new_venue" // No prior verification record for the venue
)

// ReviewAction is what the escalation decision table prescribes
type ReviewAction string

const (
	ActionFlag   ReviewAction = "flag"
	ActionQueue  ReviewAction = "queue"
	ActionNotify ReviewAction = "notify"
	ActionBlock  ReviewAction = "block"
)

// ReviewStatus tracks the case through its state machine:
// pending -> reviewed -> {approved | rejected}. No transition skips reviewed.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewReviewed ReviewStatus = "reviewed"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Terminal reports whether the status is a terminal state
func (s ReviewStatus) Terminal() bool {
	return s == ReviewApproved || s == ReviewRejected
}

// ReviewCase is a durable record of a document awaiting human judgment.
// The queue holds at most one pending case per file path.
type ReviewCase struct {
	ID           string        `json:"id"`
	FilePath     string        `json:"filePath"`
	Title        string        `json:"title"`
	Trigger      ReviewTrigger `json:"trigger"`
	Action       ReviewAction  `json:"action"`
	Score        int           `json:"score"`
	Details      string        `json:"details,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	Status       ReviewStatus  `json:"status"`
	ReviewedAt   *time.Time    `json:"reviewedAt,omitempty"`
	ReviewerNote string        `json:"reviewerNote,omitempty"`
}
