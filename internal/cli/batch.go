package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/factgate/factgate/internal/pipeline"
	"github.com/factgate/factgate/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Fact-check every markdown document under a directory",
	Long: `Batch processes a content directory concurrently:
- Find markdown files recursively
- Check documents in parallel with a configurable worker count
- All workers share one circuit breaker, so an oracle outage is noticed once
- Write one JSON report per document

Example:
  factgate batch ./content
  factgate batch ./content --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factgate-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable verdict cache")
	batchCmd.Flags().BoolVar(&offline, "offline", false, "skip oracle calls (all claims resolve unknown)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose
	if offline {
		cfg.Oracle.Provider = ""
	} else if strings.EqualFold(cfg.Oracle.Provider, "openai") && cfg.Oracle.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set (use --offline to check without verification)")
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Factgate Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Oracle:       %s\n", oracleName(cfg.Oracle.Provider))
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	outcomes, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	var checked, skipped, passed, blocked, escalated, failures int
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Path, outcome.Error)
			continue
		}
		if outcome.Result.Skipped {
			skipped++
			continue
		}

		checked++
		report := outcome.Result.Report
		switch {
		case report.BlockPublish:
			blocked++
		case report.PassesGate:
			passed++
		}
		if outcome.Result.ReviewCase != nil {
			escalated++
		}

		name := strings.TrimSuffix(filepath.Base(outcome.Path), filepath.Ext(outcome.Path))
		jsonPath := filepath.Join(outputDir, name+".factcheck.json")
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", outcome.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (score: %d/100)\n", outcome.Path, report.OverallScore)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:  %d checked, %d skipped, %d errors\n", checked, skipped, failures)
	fmt.Fprintf(os.Stderr, "  Gate:       %d passed, %d blocked, %d escalated\n", passed, blocked, escalated)
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
