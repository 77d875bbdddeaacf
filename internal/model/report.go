package model

import "time"

// FactCheckReport is the unit of record for one verification run.
// It is immutable once built: both human review and auto-fix consume it as-is.
type FactCheckReport struct {
	FilePath  string    `json:"filePath"`
	Title     string    `json:"title"`
	CheckedAt time.Time `json:"checkedAt"`

	OverallScore   int            `json:"overallScore"`
	CategoryScores CategoryScores `json:"categoryScores"`
	Claims         ClaimCounts    `json:"claims"`
	BySeverity     SeverityCounts `json:"bySeverity"`

	Results         []VerificationResult `json:"results"`
	ExtractedClaims []Claim              `json:"extractedClaims"`
	Corrections     []Correction         `json:"corrections"`

	PassesGate       bool `json:"passesGate"`
	NeedsHumanReview bool `json:"needsHumanReview"`
	BlockPublish     bool `json:"blockPublish"`
}

// CategoryScores holds the per-severity percentage scores (0-100).
// A category with zero claims scores a vacuous 100.
type CategoryScores struct {
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Minor    int `json:"minor"`
}

// ClaimCounts summarizes verdicts across the whole document
type ClaimCounts struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	False    int `json:"false"`
	Unknown  int `json:"unknown"`
}

// SeverityCounts holds the same four counters per severity band
type SeverityCounts struct {
	Critical ClaimCounts `json:"critical"`
	Major    ClaimCounts `json:"major"`
	Minor    ClaimCounts `json:"minor"`
}

// Evaluation is the quality-gate outcome produced by the score evaluator
type Evaluation struct {
	CategoryScores   CategoryScores `json:"categoryScores"`
	OverallScore     int            `json:"overallScore"`
	PassesGate       bool           `json:"passesGate"`
	BlockPublish     bool           `json:"blockPublish"`
	NeedsHumanReview bool           `json:"needsHumanReview"`
	Claims           ClaimCounts    `json:"claims"`
	BySeverity       SeverityCounts `json:"bySeverity"`
}
