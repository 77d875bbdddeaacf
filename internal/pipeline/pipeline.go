package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/factgate/factgate/internal/cache"
	"github.com/factgate/factgate/internal/document"
	"github.com/factgate/factgate/internal/extract"
	"github.com/factgate/factgate/internal/fix"
	"github.com/factgate/factgate/internal/model"
	"github.com/factgate/factgate/internal/retry"
	"github.com/factgate/factgate/internal/review"
	"github.com/factgate/factgate/internal/score"
	"github.com/factgate/factgate/internal/verify"
)

// Pipeline orchestrates one fact-check run: extract -> verify -> score ->
// escalate -> corrections. Verification goes claim by claim; the breaker is
// shared across all claims (and documents) so the pipeline notices when the
// oracle itself is down.
type Pipeline struct {
	extractor *extract.Extractor
	oracle    verify.Oracle        // rate-limited, possibly cache-wrapped; nil when disabled
	cached    *verify.CachedOracle // set when caching is enabled, backs the cache fallback
	breaker   *retry.CircuitBreaker
	evaluator *score.Evaluator
	escalator *review.Escalator
	queue     *review.Queue
	history   *review.History
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline wires the pipeline from configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	oracle, err := verify.NewOracle(cfg.Oracle)
	if err != nil {
		return nil, err
	}

	var cached *verify.CachedOracle
	if oracle != nil && cfg.Cache.Enabled {
		store := cache.NewLayeredCache(time.Hour, cfg.Cache.Dir, cfg.Cache.TTL())
		cached = verify.NewCachedOracle(oracle, store, cfg.Cache.TTL())
		oracle = cached
	}
	if oracle != nil {
		oracle = verify.NewRateLimitedOracle(oracle, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	}

	queue := review.NewQueue(cfg.Review.QueuePath)
	history := review.NewHistory(cfg.Review.HistoryPath)

	return &Pipeline{
		extractor: extract.NewExtractor(),
		oracle:    oracle,
		cached:    cached,
		breaker:   retry.NewCircuitBreaker(cfg.Breaker.Threshold, cfg.Breaker.ResetTimeout()),
		evaluator: score.NewEvaluator(),
		escalator: review.NewEscalator(cfg.Review.SensitiveTopics, history),
		queue:     queue,
		history:   history,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}, nil
}

// Queue exposes the review queue for the CLI review commands
func (p *Pipeline) Queue() *review.Queue {
	return p.queue
}

// CheckResult is the outcome of checking one document
type CheckResult struct {
	Report     *model.FactCheckReport
	Skipped    bool // Document carried nothing verifiable
	ReviewCase *model.ReviewCase
}

// CheckFile fact-checks a single markdown document
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*CheckResult, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	if !p.extractor.NeedsFactCheck(doc) {
		return &CheckResult{Skipped: true}, nil
	}

	claims := p.extractor.Extract(doc)
	results := p.verifyClaims(ctx, claims)

	eval := p.evaluator.Evaluate(claims, results, p.config.Gate)
	corrections := fix.GenerateCorrections(results, claims)

	report := &model.FactCheckReport{
		FilePath:         path,
		Title:            doc.Title(),
		CheckedAt:        time.Now().UTC(),
		OverallScore:     eval.OverallScore,
		CategoryScores:   eval.CategoryScores,
		Claims:           eval.Claims,
		BySeverity:       eval.BySeverity,
		Results:          results,
		ExtractedClaims:  claims,
		Corrections:      corrections,
		PassesGate:       eval.PassesGate,
		NeedsHumanReview: eval.NeedsHumanReview,
		BlockPublish:     eval.BlockPublish,
	}

	out := &CheckResult{Report: report}

	decision, err := p.escalator.Evaluate(report, doc.Body, doc.Venue())
	if err != nil {
		return nil, fmt.Errorf("escalate: %w", err)
	}
	if decision.Needed {
		c, err := p.queue.Upsert(review.CaseFor(report, decision))
		if err != nil {
			return nil, fmt.Errorf("queue review case: %w", err)
		}
		out.ReviewCase = &c
	}

	if venue := doc.Venue(); venue != "" && venueVerified(claims, results) {
		if err := p.history.Record(venue); err != nil {
			// History is advisory; a write failure must not fail the check
			fmt.Fprintf(os.Stderr, "Warning: record venue history: %v\n", err)
		}
	}

	return out, nil
}

// verifyClaims issues one oracle call per claim. An unreachable oracle
// degrades a claim to unknown rather than aborting the report: one dead
// claim must not block scoring the rest of the document.
func (p *Pipeline) verifyClaims(ctx context.Context, claims []model.Claim) []model.VerificationResult {
	results := make([]model.VerificationResult, 0, len(claims))

	for _, claim := range claims {
		if p.oracle == nil {
			results = append(results, unknownResult(claim))
			continue
		}

		claim := claim
		op := func(ctx context.Context) (*model.VerificationResult, error) {
			var verdict *model.VerificationResult
			err := p.breaker.Execute(ctx, func(ctx context.Context) error {
				r, err := p.oracle.Verify(ctx, claim)
				if err != nil {
					return err
				}
				verdict = r
				return nil
			})
			return verdict, err
		}

		var fallback retry.Operation[*model.VerificationResult]
		if p.cached != nil {
			fallback = p.cached.Fallback(claim)
		}

		res := retry.Do(ctx, p.config.Retry, op, fallback)
		if res.Success {
			results = append(results, *res.Value)
			continue
		}

		if p.config.Output.Verbose && res.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ claim %s unresolved after %d attempt(s): %v\n", claim.ID, res.Attempts, res.Err)
		}
		results = append(results, unknownResult(claim))
	}

	return results
}

// unknownResult is the degraded verdict for an unverifiable claim
func unknownResult(claim model.Claim) model.VerificationResult {
	return model.VerificationResult{
		ClaimID:   claim.ID,
		Status:    model.StatusUnknown,
		Source:    model.SourceUnknown,
		CheckedAt: time.Now().UTC(),
	}
}

// venueVerified reports whether the document's venue_exists claim resolved
// verified
func venueVerified(claims []model.Claim, results []model.VerificationResult) bool {
	for _, c := range claims {
		if c.Type != model.ClaimVenueExists {
			continue
		}
		for _, r := range results {
			if r.ClaimID == c.ID && r.Status == model.StatusVerified {
				return true
			}
		}
	}
	return false
}
