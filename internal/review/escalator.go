package review

import (
	"fmt"
	"strings"

	"github.com/factgate/factgate/internal/model"
)

// Decision is the outcome of the escalation decision table
type Decision struct {
	Needed  bool
	Trigger model.ReviewTrigger
	Action  model.ReviewAction
	Details string
}

// Escalator decides whether a report needs a human, and how urgently
type Escalator struct {
	sensitiveTopics []string
	history         *History // may be nil: new_venue trigger disabled
}

// NewEscalator creates an escalator with the configured sensitive-topic
// keyword list and venue history
func NewEscalator(sensitiveTopics []string, history *History) *Escalator {
	return &Escalator{sensitiveTopics: sensitiveTopics, history: history}
}

// Evaluate runs the decision table in priority order; the first match wins.
//
//  1. any critical claim resolved false      -> critical_false, block
//  2. overall score in [50,70)               -> score_50_70, queue
//  3. unknown-claim ratio >= 50%             -> high_unknown, queue
//  4. body mentions a sensitive topic        -> sensitive_topic, flag
//  5. venue with no prior verification       -> new_venue, flag
func (e *Escalator) Evaluate(report *model.FactCheckReport, body, venue string) (Decision, error) {
	if report.BySeverity.Critical.False > 0 {
		return Decision{
			Needed:  true,
			Trigger: model.TriggerCriticalFalse,
			Action:  model.ActionBlock,
			Details: fmt.Sprintf("%d critical claim(s) resolved false", report.BySeverity.Critical.False),
		}, nil
	}

	if report.OverallScore >= 50 && report.OverallScore < 70 {
		return Decision{
			Needed:  true,
			Trigger: model.TriggerScore50To70,
			Action:  model.ActionQueue,
			Details: fmt.Sprintf("overall score %d in review band [50,70)", report.OverallScore),
		}, nil
	}

	if report.Claims.Total > 0 && float64(report.Claims.Unknown)/float64(report.Claims.Total) >= 0.5 {
		return Decision{
			Needed:  true,
			Trigger: model.TriggerHighUnknown,
			Action:  model.ActionQueue,
			Details: fmt.Sprintf("%d of %d claims could not be verified", report.Claims.Unknown, report.Claims.Total),
		}, nil
	}

	lower := strings.ToLower(body)
	for _, topic := range e.sensitiveTopics {
		if topic != "" && strings.Contains(lower, strings.ToLower(topic)) {
			return Decision{
				Needed:  true,
				Trigger: model.TriggerSensitiveTopic,
				Action:  model.ActionFlag,
				Details: fmt.Sprintf("body mentions sensitive topic %q", topic),
			}, nil
		}
	}

	if venue != "" && e.history != nil {
		known, err := e.history.Known(venue)
		if err != nil {
			return Decision{}, err
		}
		if !known {
			return Decision{
				Needed:  true,
				Trigger: model.TriggerNewVenue,
				Action:  model.ActionFlag,
				Details: fmt.Sprintf("no prior verification record for venue %q", venue),
			}, nil
		}
	}

	return Decision{}, nil
}

// CaseFor builds the review case a decision should persist
func CaseFor(report *model.FactCheckReport, d Decision) model.ReviewCase {
	return model.ReviewCase{
		FilePath: report.FilePath,
		Title:    report.Title,
		Trigger:  d.Trigger,
		Action:   d.Action,
		Score:    report.OverallScore,
		Details:  d.Details,
	}
}
