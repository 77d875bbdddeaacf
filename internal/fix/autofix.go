package fix

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/factgate/factgate/internal/document"
	"github.com/factgate/factgate/internal/model"
	"github.com/factgate/factgate/internal/review"
)

// Version tags audit records so their schema can evolve
const Version = "1.0"

// Options controls an auto-fix run
type Options struct {
	DryRun bool
}

// AutoFixer applies safe corrections to a document in place. Critical
// corrections are never touched: they go to the review queue instead.
// Callers must serialize fixes per file; the fixer takes no lock.
type AutoFixer struct {
	queue    *review.Queue
	auditDir string
	now      func() time.Time // injectable for tests
}

// NewAutoFixer creates a fixer writing audit records under auditDir.
// The queue may be nil (critical corrections are then only counted).
func NewAutoFixer(queue *review.Queue, auditDir string) *AutoFixer {
	return &AutoFixer{queue: queue, auditDir: auditDir, now: time.Now}
}

// Apply runs the fix algorithm against the document at path:
//
//  1. Critical corrections are queued for review, never applied.
//  2. Auto-applicable corrections are sorted by claim line number
//     descending so earlier edits cannot shift pending ones.
//  3. Each correction replaces exactly one occurrence; zero occurrences is
//     a skip (the document changed since extraction), multiple occurrences
//     apply to the first with a warning.
//  4. Unless DryRun, the file is rewritten and an audit record is appended
//     to a dated, slug-named log file. Write failures propagate hard.
func (f *AutoFixer) Apply(path string, report *model.FactCheckReport, opts Options) (*model.AutoFixReport, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	claimByID := make(map[string]model.Claim, len(report.ExtractedClaims))
	for _, c := range report.ExtractedClaims {
		claimByID[c.ID] = c
	}

	out := &model.AutoFixReport{
		FilePath:         path,
		Title:            report.Title,
		DryRun:           opts.DryRun,
		TotalCorrections: len(report.Corrections),
		BeforeHash:       contentHash(doc.Serialize()),
	}

	var applicable []model.Correction
	for _, c := range report.Corrections {
		if c.AutoApplicable {
			applicable = append(applicable, c)
			continue
		}
		out.CriticalQueued++
		if f.queue != nil && !opts.DryRun {
			_, err := f.queue.Upsert(model.ReviewCase{
				FilePath: path,
				Title:    report.Title,
				Trigger:  model.TriggerCriticalFalse,
				Action:   model.ActionBlock,
				Score:    report.OverallScore,
				Details:  fmt.Sprintf("critical correction needs approval: %q -> %q", c.OriginalText, c.SuggestedText),
			})
			if err != nil {
				return nil, fmt.Errorf("queue critical correction: %w", err)
			}
		}
	}

	// Bottom of the document first. This keeps the byte offsets of pending
	// corrections valid while earlier ones are applied.
	sort.SliceStable(applicable, func(i, j int) bool {
		return claimByID[applicable[i].ClaimID].LineNumber > claimByID[applicable[j].ClaimID].LineNumber
	})

	for _, c := range applicable {
		result := model.AppliedCorrection{
			ClaimID:       c.ClaimID,
			OriginalText:  c.OriginalText,
			SuggestedText: c.SuggestedText,
		}

		switch occurrences := strings.Count(doc.Body, c.OriginalText); occurrences {
		case 0:
			// The document changed since extraction. Not an error.
			result.SkippedReason = "original text not found"
			out.Skipped++
		case 1:
			doc.Body = replaceFirst(doc.Body, c.OriginalText, c.SuggestedText)
			result.Applied = true
			out.Applied++
		default:
			// Do not guess which occurrence was intended
			doc.Body = replaceFirst(doc.Body, c.OriginalText, c.SuggestedText)
			result.Applied = true
			result.Warning = fmt.Sprintf("%d occurrences found, applied to first only", occurrences)
			out.Applied++
		}

		out.Corrections = append(out.Corrections, result)
	}

	out.AfterHash = contentHash(doc.Serialize())

	if opts.DryRun || out.Applied == 0 {
		return out, nil
	}

	if err := doc.Save(path); err != nil {
		return nil, err
	}

	auditPath, err := f.writeAudit(out, report)
	if err != nil {
		return nil, err
	}
	out.AuditLogPath = auditPath

	return out, nil
}

// writeAudit persists the immutable audit record for this run
func (f *AutoFixer) writeAudit(out *model.AutoFixReport, report *model.FactCheckReport) (string, error) {
	fixedAt := f.now().UTC()

	var applied []model.AppliedCorrection
	for _, c := range out.Corrections {
		if c.Applied {
			applied = append(applied, c)
		}
	}

	record := model.AuditRecord{
		FilePath:       out.FilePath,
		Title:          out.Title,
		FixedAt:        fixedAt,
		BeforeHash:     out.BeforeHash,
		AfterHash:      out.AfterHash,
		Corrections:    applied,
		FactcheckScore: report.OverallScore,
		Version:        Version,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit record: %w", err)
	}

	if err := os.MkdirAll(f.auditDir, 0755); err != nil {
		return "", fmt.Errorf("create audit dir: %w", err)
	}

	path := f.auditPath(out, fixedAt)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write audit record: %w", err)
	}
	return path, nil
}

// auditPath builds a dated, slug-named file that never collides with an
// existing record (records are immutable)
func (f *AutoFixer) auditPath(out *model.AutoFixReport, fixedAt time.Time) string {
	slug := slugify(out.Title)
	if slug == "" {
		slug = slugify(strings.TrimSuffix(filepath.Base(out.FilePath), filepath.Ext(out.FilePath)))
	}

	base := fmt.Sprintf("%s-%s", fixedAt.Format("2006-01-02"), slug)
	path := filepath.Join(f.auditDir, base+".json")
	for i := 2; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(f.auditDir, fmt.Sprintf("%s-%d.json", base, i))
	}
}

// replaceFirst replaces only the first occurrence of old in s
func replaceFirst(s, old, new string) string {
	idx := strings.Index(s, old)
	if idx < 0 {
		return s
	}
	return s[:idx] + new + s[idx+len(old):]
}

// contentHash returns a truncated sha256 of the document content
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:12]
}

// slugify reduces a title to a safe filename fragment
func slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 0xAC00 && r <= 0xD7A3:
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if runes := []rune(out); len(runes) > 80 {
		out = string(runes[:80])
	}
	return out
}
