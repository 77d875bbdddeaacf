package model

import "time"

// VerificationStatus is the verdict for a single claim
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusFalse    VerificationStatus = "false"
	StatusUnknown  VerificationStatus = "unknown"
)

// VerificationSource records where the verdict came from
type VerificationSource string

const (
	SourceOfficialAPI VerificationSource = "official_api"
	SourceWebSearch   VerificationSource = "web_search"
	SourceCached      VerificationSource = "cached"
	SourceUnknown     VerificationSource = "unknown"
)

// VerificationResult is one verdict per claim. A completed report carries
// exactly one result for every extracted claim.
type VerificationResult struct {
	ClaimID      string             `json:"claimId"`
	Status       VerificationStatus `json:"status"`
	Confidence   int                `json:"confidence"` // 0-100
	Source       VerificationSource `json:"source"`
	SourceURL    string             `json:"sourceUrl,omitempty"`
	CorrectValue string             `json:"correctValue,omitempty"` // Populated only when Status is false
	CheckedAt    time.Time          `json:"checkedAt"`
}

// Correction is a proposed text replacement derived from a false verdict
type Correction struct {
	ClaimID        string `json:"claimId"`
	OriginalText   string `json:"originalText"`
	SuggestedText  string `json:"suggestedText"`
	Reason         string `json:"reason"`
	AutoApplicable bool   `json:"autoApplicable"` // Always false for critical claims
}
