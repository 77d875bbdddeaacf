package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/factgate/factgate/internal/fix"
	"github.com/factgate/factgate/internal/model"
	"github.com/factgate/factgate/internal/review"
	"github.com/spf13/cobra"
)

var (
	reportPath string
	dryRun     bool
)

// fixCmd represents the fix command
var fixCmd = &cobra.Command{
	Use:   "fix <file.md>",
	Short: "Apply safe corrections from a fact-check report",
	Long: `Fix applies the auto-applicable corrections from a previous check run to
the document in place. Corrections for critical claims are never applied
silently: they are queued for human review instead.

Every applied fix is recorded in a dated audit log with content hashes of
the document before and after.

Example:
  factgate fix content/gyeongbokgung.md --report report.json
  factgate fix content/gyeongbokgung.md --report report.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().StringVar(&reportPath, "report", "report.json", "fact-check report to apply")
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing anything")
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg := buildConfig()

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	var report model.FactCheckReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	queue := review.NewQueue(cfg.Review.QueuePath)
	fixer := fix.NewAutoFixer(queue, cfg.Audit.Dir)

	result, err := fixer.Apply(path, &report, fix.Options{DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("auto-fix failed: %w", err)
	}

	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("\n  Auto-fix%s: %s\n", mode, path)
	fmt.Printf("  Corrections: %d total, %d applied, %d skipped, %d queued for review\n",
		result.TotalCorrections, result.Applied, result.Skipped, result.CriticalQueued)

	for _, c := range result.Corrections {
		switch {
		case c.Applied && c.Warning != "":
			fmt.Printf("  ~ %q → %q (%s)\n", c.OriginalText, c.SuggestedText, c.Warning)
		case c.Applied:
			fmt.Printf("  ✓ %q → %q\n", c.OriginalText, c.SuggestedText)
		default:
			fmt.Printf("  - %q skipped: %s\n", c.OriginalText, c.SkippedReason)
		}
	}

	if result.Applied > 0 {
		fmt.Printf("  Hash: %s → %s\n", result.BeforeHash, result.AfterHash)
	}
	if result.AuditLogPath != "" {
		fmt.Printf("  Audit: %s\n", result.AuditLogPath)
	}
	fmt.Println()

	return nil
}
