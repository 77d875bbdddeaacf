package model

import "time"

// AppliedCorrection is the per-correction outcome of an auto-fix run
type AppliedCorrection struct {
	ClaimID       string `json:"claimId"`
	OriginalText  string `json:"originalText"`
	SuggestedText string `json:"suggestedText"`
	Applied       bool   `json:"applied"`
	SkippedReason string `json:"skippedReason,omitempty"` // Set when Applied is false
	Warning       string `json:"warning,omitempty"`       // e.g. multiple occurrences found
}

// AutoFixReport summarizes one auto-fix run over a document
type AutoFixReport struct {
	FilePath         string              `json:"filePath"`
	Title            string              `json:"title"`
	DryRun           bool                `json:"dryRun"`
	TotalCorrections int                 `json:"totalCorrections"`
	Applied          int                 `json:"applied"`
	Skipped          int                 `json:"skipped"`
	CriticalQueued   int                 `json:"criticalQueued"`
	BeforeHash       string              `json:"beforeHash"`
	AfterHash        string              `json:"afterHash"`
	Corrections      []AppliedCorrection `json:"corrections"`
	AuditLogPath     string              `json:"auditLogPath,omitempty"`
}

// AuditRecord is the immutable trail written after a non-dry-run fix.
// One file per fix run, never rewritten.
type AuditRecord struct {
	FilePath       string              `json:"filePath"`
	Title          string              `json:"title"`
	FixedAt        time.Time           `json:"fixedAt"`
	BeforeHash     string              `json:"beforeHash"`
	AfterHash      string              `json:"afterHash"`
	Corrections    []AppliedCorrection `json:"corrections"` // Applied corrections only
	FactcheckScore int                 `json:"factcheckScore"`
	Version        string              `json:"version"`
}
