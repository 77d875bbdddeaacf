package worker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/factgate/factgate/internal/pipeline"
)

// Checker fact-checks a single document
type Checker interface {
	CheckFile(ctx context.Context, path string) (*pipeline.CheckResult, error)
}

// CheckJob fact-checks one file inside the pool
type CheckJob struct {
	Path    string
	Checker Checker
}

// Execute runs the check
func (j *CheckJob) Execute(ctx context.Context) Result {
	result, err := j.Checker.CheckFile(ctx, j.Path)
	return &CheckOutcome{Path: j.Path, Result: result, Error: err}
}

// CheckOutcome is the per-file result of a batch run
type CheckOutcome struct {
	Path   string
	Result *pipeline.CheckResult
	Error  error
}

// GetError returns the job error
func (o *CheckOutcome) GetError() error {
	return o.Error
}

// BatchProcessor fact-checks many documents concurrently. All jobs share one
// pipeline, and through it one circuit breaker: when the oracle goes down,
// every in-flight document sees it.
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{checker: checker, concurrency: concurrency}
}

// ProcessFiles checks the given files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*CheckOutcome {
	if len(paths) == 0 {
		return []*CheckOutcome{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit from a separate goroutine: batches routinely exceed the pool's
	// bounded queues, so results must be drained while submitting
	go func() {
		for _, path := range paths {
			pool.Submit(&CheckJob{Path: path, Checker: b.checker})
		}
		pool.Done()
	}()

	outcomes := make([]*CheckOutcome, 0, len(paths))
	for result := range pool.Results() {
		outcomes = append(outcomes, result.(*CheckOutcome))
	}

	return outcomes
}

// ProcessDir finds markdown files under dir and checks them concurrently
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*CheckOutcome, error) {
	paths, err := FindMarkdownFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan directory: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// FindMarkdownFiles lists .md files under dir recursively, sorted for
// deterministic batch ordering
func FindMarkdownFiles(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories such as .factgate
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
