package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/factgate/factgate/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	checkTimeout time.Duration
	noCache      bool
	noFooter     bool
	offline      bool
	oracleModel  string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.md>",
	Short: "Fact-check a single markdown document",
	Long: `Check extracts verifiable claims from a document's front matter and body,
verifies each against external sources, and scores the document against the
quality gate. Failing or ambiguous documents are escalated to the review
queue; false claims produce proposed corrections in the report.

Example:
  factgate check content/gyeongbokgung.md
  factgate check content/gyeongbokgung.md --json report.json --md report.md
  factgate check content/essay.md --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable verdict cache (force fresh verification)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&offline, "offline", false, "skip oracle calls (all claims resolve unknown)")
	checkCmd.Flags().StringVar(&oracleModel, "model", "", "oracle model name (overrides config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	if oracleModel != "" {
		cfg.Oracle.Model = oracleModel
	}
	if offline {
		cfg.Oracle.Provider = ""
	} else if strings.EqualFold(cfg.Oracle.Provider, "openai") && cfg.Oracle.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set (use --offline to check without verification)")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Oracle: %s\n", oracleName(cfg.Oracle.Provider))
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.CheckFile(ctx, path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if result.Skipped {
		fmt.Fprintf(os.Stderr, "No verifiable claims found, skipping: %s\n", path)
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", result.Report.Claims.Total)
		fmt.Fprintf(os.Stderr, "✓ Overall score: %d/100\n", result.Report.OverallScore)
		if result.ReviewCase != nil {
			fmt.Fprintf(os.Stderr, "✓ Escalated for review: %s (%s)\n", result.ReviewCase.Trigger, result.ReviewCase.Action)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := renderCheckResult(p, result, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if result.Report.BlockPublish {
		return fmt.Errorf("publication blocked: critical claims failed verification")
	}
	return nil
}

// renderCheckResult writes the report outputs and the stdout summary
func renderCheckResult(p *pipeline.Pipeline, result *pipeline.CheckResult, jsonPath, mdPath string) error {
	renderer := pipeline.NewRenderer(!noFooter)

	if jsonPath != "" {
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	renderer.RenderSummary(result.Report)
	return nil
}

func oracleName(provider string) string {
	if provider == "" {
		return "disabled"
	}
	return provider
}
