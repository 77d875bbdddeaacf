package fix

import (
	"fmt"

	"github.com/factgate/factgate/internal/model"
)

// GenerateCorrections derives proposed text replacements from false verdicts.
// One correction is emitted per false result carrying a correct value.
//
// AutoApplicable is the single safety rule separating "the system may fix
// this silently" from "a human must approve this": corrections for critical
// claims are never auto-applicable.
func GenerateCorrections(results []model.VerificationResult, claims []model.Claim) []model.Correction {
	claimByID := make(map[string]model.Claim, len(claims))
	for _, c := range claims {
		claimByID[c.ID] = c
	}

	var corrections []model.Correction
	for _, r := range results {
		if r.Status != model.StatusFalse || r.CorrectValue == "" {
			continue
		}
		claim, ok := claimByID[r.ClaimID]
		if !ok {
			continue
		}

		corrections = append(corrections, model.Correction{
			ClaimID:        claim.ID,
			OriginalText:   claim.Text,
			SuggestedText:  r.CorrectValue,
			Reason:         fmt.Sprintf("%s claim contradicted by verification (confidence %d)", claim.Type, r.Confidence),
			AutoApplicable: claim.Severity != model.SeverityCritical,
		})
	}

	return corrections
}
