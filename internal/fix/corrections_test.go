package fix

import (
	"testing"

	"github.com/factgate/factgate/internal/model"
)

func TestGenerateCorrections(t *testing.T) {
	claims := []model.Claim{
		{ID: "claim-001", Type: model.ClaimLocation, Text: "161 Sajik-ro", Severity: model.SeverityCritical},
		{ID: "claim-002", Type: model.ClaimHours, Text: "09:00-18:00", Severity: model.SeverityMajor},
		{ID: "claim-003", Type: model.ClaimPrice, Text: "3,000원", Severity: model.SeverityMinor},
		{ID: "claim-004", Type: model.ClaimPrice, Text: "5,000원", Severity: model.SeverityMinor},
	}
	results := []model.VerificationResult{
		{ClaimID: "claim-001", Status: model.StatusFalse, CorrectValue: "162 Sajik-ro", Confidence: 90},
		{ClaimID: "claim-002", Status: model.StatusFalse, CorrectValue: "09:00-17:00", Confidence: 85},
		{ClaimID: "claim-003", Status: model.StatusVerified},
		{ClaimID: "claim-004", Status: model.StatusFalse}, // false but no correct value
	}

	corrections := GenerateCorrections(results, claims)

	if len(corrections) != 2 {
		t.Fatalf("Expected 2 corrections, got %d: %+v", len(corrections), corrections)
	}

	byID := map[string]model.Correction{}
	for _, c := range corrections {
		byID[c.ClaimID] = c
	}

	critical := byID["claim-001"]
	if critical.AutoApplicable {
		t.Error("Critical corrections must never be auto-applicable")
	}
	if critical.SuggestedText != "162 Sajik-ro" {
		t.Errorf("Unexpected suggestion %q", critical.SuggestedText)
	}

	major := byID["claim-002"]
	if !major.AutoApplicable {
		t.Error("Expected non-critical correction to be auto-applicable")
	}
	if major.OriginalText != "09:00-18:00" {
		t.Errorf("Expected claim text as original, got %q", major.OriginalText)
	}
}

func TestGenerateCorrections_OrphanResultIgnored(t *testing.T) {
	results := []model.VerificationResult{
		{ClaimID: "no-such-claim", Status: model.StatusFalse, CorrectValue: "x"},
	}
	if got := GenerateCorrections(results, nil); len(got) != 0 {
		t.Errorf("Expected orphan result ignored, got %+v", got)
	}
}
