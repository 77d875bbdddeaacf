package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/factgate/factgate/internal/model"
)

// Renderer writes fact-check reports as JSON, Markdown, and a stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.FactCheckReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.FactCheckReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report: %s\n\n", report.Title)
	fmt.Fprintf(&b, "- **File**: %s\n", report.FilePath)
	fmt.Fprintf(&b, "- **Checked**: %s\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- **Overall score**: %d/100\n", report.OverallScore)
	fmt.Fprintf(&b, "- **Gate**: %s\n\n", gateVerdict(report))

	b.WriteString("## Category Scores\n\n")
	b.WriteString("| Category | Score | Claims | Verified | False | Unknown |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| critical | %d | %d | %d | %d | %d |\n",
		report.CategoryScores.Critical, report.BySeverity.Critical.Total,
		report.BySeverity.Critical.Verified, report.BySeverity.Critical.False, report.BySeverity.Critical.Unknown)
	fmt.Fprintf(&b, "| major | %d | %d | %d | %d | %d |\n",
		report.CategoryScores.Major, report.BySeverity.Major.Total,
		report.BySeverity.Major.Verified, report.BySeverity.Major.False, report.BySeverity.Major.Unknown)
	fmt.Fprintf(&b, "| minor | %d | %d | %d | %d | %d |\n\n",
		report.CategoryScores.Minor, report.BySeverity.Minor.Total,
		report.BySeverity.Minor.Verified, report.BySeverity.Minor.False, report.BySeverity.Minor.Unknown)

	if len(report.Results) > 0 {
		b.WriteString("## Claims\n\n")
		b.WriteString("| ID | Type | Severity | Value | Status | Confidence |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		resultByID := make(map[string]model.VerificationResult, len(report.Results))
		for _, res := range report.Results {
			resultByID[res.ClaimID] = res
		}
		for _, c := range report.ExtractedClaims {
			res := resultByID[c.ID]
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d |\n",
				c.ID, c.Type, c.Severity, escapePipes(c.Value), res.Status, res.Confidence)
		}
		b.WriteString("\n")
	}

	if len(report.Corrections) > 0 {
		b.WriteString("## Proposed Corrections\n\n")
		for _, c := range report.Corrections {
			marker := "requires approval"
			if c.AutoApplicable {
				marker = "auto-applicable"
			}
			fmt.Fprintf(&b, "- `%s` → `%s` (%s; %s)\n", c.OriginalText, c.SuggestedText, c.Reason, marker)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n*Generated by factgate. Scores describe verification coverage, not editorial quality.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// RenderSummary prints a short result block to stdout
func (r *Renderer) RenderSummary(report *model.FactCheckReport) {
	fmt.Println()
	fmt.Printf("  %s\n", report.Title)
	fmt.Printf("  Overall: %d/100 (critical %d, major %d, minor %d)\n",
		report.OverallScore, report.CategoryScores.Critical,
		report.CategoryScores.Major, report.CategoryScores.Minor)
	fmt.Printf("  Claims:  %d total, %d verified, %d false, %d unknown\n",
		report.Claims.Total, report.Claims.Verified, report.Claims.False, report.Claims.Unknown)
	fmt.Printf("  Gate:    %s\n", gateVerdict(report))
	if len(report.Corrections) > 0 {
		fmt.Printf("  Corrections proposed: %d\n", len(report.Corrections))
	}
	fmt.Println()
}

func gateVerdict(report *model.FactCheckReport) string {
	switch {
	case report.BlockPublish:
		return "BLOCKED (critical failure)"
	case report.PassesGate && report.NeedsHumanReview:
		return "PASS (human review requested)"
	case report.PassesGate:
		return "PASS"
	case report.NeedsHumanReview:
		return "FAIL (human review requested)"
	default:
		return "FAIL"
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
