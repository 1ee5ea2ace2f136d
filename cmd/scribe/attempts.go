package main

import (
	"fmt"
	"time"

	"github.com/okian/scribe/internal/domain/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(attemptsCmd)
}

var attemptsCmd = &cobra.Command{
	Use:   "attempts <assignment-id>",
	Short: "Show the audit trail of submission attempts",
	Long: `Show the audit trail of submission attempts for an assignment,
accepted and rejected alike, oldest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttempts,
}

// attemptRecord is one audit row in the JSON listing.
type attemptRecord struct {
	ID            string  `json:"id"`
	StudentID     string  `json:"student_id"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	LexicalMax    float64 `json:"lexical_max_similarity"`
	SemanticScore float64 `json:"semantic_score"`
	Timestamp     string  `json:"timestamp"`
}

func runAttempts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, _, cleanup := openService(ctx)
	defer cleanup()

	attempts, err := svc.Attempts(ctx, args[0])
	if err != nil {
		fail(ExitError, "listing attempts: %v", err)
	}

	if humanOutput {
		printAttempts(args[0], attempts)
		return nil
	}

	records := make([]attemptRecord, len(attempts))
	for i, a := range attempts {
		records[i] = attemptRecord{
			ID:            a.ID,
			StudentID:     a.StudentID,
			Status:        string(a.Status),
			Reason:        a.Reason,
			LexicalMax:    a.LexicalMax,
			SemanticScore: a.SemanticScore,
			Timestamp:     a.TS.Format(time.RFC3339),
		}
	}
	return outputJSON(records)
}

func printAttempts(assignmentID string, attempts []model.Attempt) {
	fmt.Printf("%d attempt(s) for %s\n", len(attempts), assignmentID)
	for _, a := range attempts {
		line := fmt.Sprintf("  %s  %s  %-8s  lex=%.4f sem=%.4f",
			a.TS.Format(time.RFC3339), a.StudentID, a.Status, a.LexicalMax, a.SemanticScore)
		if a.Reason != "" {
			line += "  (" + a.Reason + ")"
		}
		fmt.Println(line)
	}
}
