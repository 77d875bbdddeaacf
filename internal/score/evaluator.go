package score

import (
	"math"

	"github.com/factgate/factgate/internal/model"
)

// Evaluator turns per-claim verdicts into category scores, an overall score,
// and the pass/fail/escalate decision. Scoring is a pure aggregate: the
// ordering of results is irrelevant.
type Evaluator struct{}

// NewEvaluator creates a new evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes the quality-gate outcome for one document.
//
// Category score = verified / total * 100, with unknown counted as
// not-verified (penalized, not ignored). A category with zero claims scores
// a vacuous 100: a document with no critical claims cannot fail the critical
// gate. The vacuous 100 keeps its full weight in the overall sum.
func (e *Evaluator) Evaluate(claims []model.Claim, results []model.VerificationResult, cfg model.GateConfig) model.Evaluation {
	severityByID := make(map[string]model.ClaimSeverity, len(claims))
	for _, c := range claims {
		severityByID[c.ID] = c.Severity
	}

	total, bySeverity := tally(claims, results, severityByID)

	scores := model.CategoryScores{
		Critical: categoryScore(bySeverity.Critical),
		Major:    categoryScore(bySeverity.Major),
		Minor:    categoryScore(bySeverity.Minor),
	}

	overall := int(math.Round(
		cfg.CriticalWeight*float64(scores.Critical) +
			cfg.MajorWeight*float64(scores.Major) +
			cfg.MinorWeight*float64(scores.Minor)))

	criticalFails := scores.Critical < cfg.CriticalThreshold

	passesGate := !criticalFails &&
		scores.Major >= cfg.MajorThreshold &&
		scores.Minor >= cfg.MinorThreshold &&
		overall >= cfg.OverallThreshold

	// Independent of the overall score: one unverified critical claim can
	// block publication even when the document scores high overall
	blockPublish := criticalFails && cfg.BlockOnCriticalFailure

	return model.Evaluation{
		CategoryScores:   scores,
		OverallScore:     overall,
		PassesGate:       passesGate,
		BlockPublish:     blockPublish,
		NeedsHumanReview: needsReview(overall, total, bySeverity),
		Claims:           total,
		BySeverity:       bySeverity,
	}
}

// categoryScore returns verified/total*100 for one severity band
func categoryScore(counts model.ClaimCounts) int {
	if counts.Total == 0 {
		return 100
	}
	return int(math.Round(float64(counts.Verified) / float64(counts.Total) * 100))
}

// needsReview applies the human-review triggers: overall in [50,70),
// unknown ratio >= 50%, or any critical claim resolved false (which
// escalates regardless of score)
func needsReview(overall int, total model.ClaimCounts, bySeverity model.SeverityCounts) bool {
	if bySeverity.Critical.False > 0 {
		return true
	}
	if overall >= 50 && overall < 70 {
		return true
	}
	if total.Total > 0 && float64(total.Unknown)/float64(total.Total) >= 0.5 {
		return true
	}
	return false
}

// tally counts verdicts overall and per severity band. Claims with no
// result (an incomplete report) count toward totals but not toward any
// verdict bucket, which penalizes them the same as unknown.
func tally(claims []model.Claim, results []model.VerificationResult, severityByID map[string]model.ClaimSeverity) (model.ClaimCounts, model.SeverityCounts) {
	var total model.ClaimCounts
	var bySeverity model.SeverityCounts

	bucket := func(severity model.ClaimSeverity) *model.ClaimCounts {
		switch severity {
		case model.SeverityCritical:
			return &bySeverity.Critical
		case model.SeverityMajor:
			return &bySeverity.Major
		default:
			return &bySeverity.Minor
		}
	}

	for _, c := range claims {
		total.Total++
		bucket(c.Severity).Total++
	}

	for _, r := range results {
		severity, ok := severityByID[r.ClaimID]
		if !ok {
			continue
		}
		b := bucket(severity)
		switch r.Status {
		case model.StatusVerified:
			total.Verified++
			b.Verified++
		case model.StatusFalse:
			total.False++
			b.False++
		default:
			total.Unknown++
			b.Unknown++
		}
	}

	return total, bySeverity
}
