package cli

import (
	"fmt"
	"time"

	"github.com/factgate/factgate/internal/model"
	"github.com/factgate/factgate/internal/review"
	"github.com/spf13/cobra"
)

var (
	listStatus   string
	reviewerNote string
)

// reviewCmd groups the human side of the escalation loop
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage the human review queue",
	Long: `Review cases move through a fixed state machine:

  pending -> reviewed -> approved | rejected

A case must be marked reviewed before it can be approved or rejected.`,
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List review cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		queue := review.NewQueue(cfg.Review.QueuePath)

		cases, err := queue.List(model.ReviewStatus(listStatus))
		if err != nil {
			return err
		}
		if len(cases) == 0 {
			fmt.Println("No review cases.")
			return nil
		}

		for _, c := range cases {
			fmt.Printf("%s  [%s]  %s\n", c.ID, c.Status, c.FilePath)
			fmt.Printf("    %s/%s, score %d — %s\n", c.Trigger, c.Action, c.Score, c.Details)
		}
		return nil
	},
}

var reviewMarkCmd = &cobra.Command{
	Use:   "mark <case-id>",
	Short: "Mark a pending case as reviewed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		queue := review.NewQueue(cfg.Review.QueuePath)
		if err := queue.MarkReviewed(args[0], reviewerNote); err != nil {
			return err
		}
		fmt.Printf("✓ Case %s marked reviewed\n", args[0])
		return nil
	},
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <case-id>",
	Short: "Approve a reviewed case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		queue := review.NewQueue(cfg.Review.QueuePath)
		if err := queue.Approve(args[0], reviewerNote); err != nil {
			return err
		}
		fmt.Printf("✓ Case %s approved\n", args[0])
		return nil
	},
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject <case-id>",
	Short: "Reject a reviewed case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		queue := review.NewQueue(cfg.Review.QueuePath)
		if err := queue.Reject(args[0], reviewerNote); err != nil {
			return err
		}
		fmt.Printf("✓ Case %s rejected\n", args[0])
		return nil
	},
}

var reviewCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Purge old terminal cases",
	Long:  `Purge approved and rejected cases older than the retention period. Pending cases are never purged regardless of age.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		queue := review.NewQueue(cfg.Review.QueuePath)

		retention := time.Duration(cfg.Review.RetentionDays) * 24 * time.Hour
		purged, err := queue.CleanupOldCases(retention)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Purged %d case(s)\n", purged)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewMarkCmd)
	reviewCmd.AddCommand(reviewApproveCmd)
	reviewCmd.AddCommand(reviewRejectCmd)
	reviewCmd.AddCommand(reviewCleanupCmd)

	reviewListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, reviewed, approved, rejected)")
	reviewCmd.PersistentFlags().StringVar(&reviewerNote, "note", "", "reviewer note to attach")
}
