package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/scribe/internal/domain/model"
	"github.com/okian/scribe/internal/domain/policy"
	"github.com/spf13/cobra"
)

var submitText string

func init() {
	submitCmd.Flags().StringVar(&submitText, "text", "", "Inline submission text (used when no file is given or the file is unreadable)")
	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit <assignment-id> <student-id> [file]",
	Short: "Submit a document for originality checking",
	Long: `Submit a document for originality checking.

The document may be a PDF, DOCX or plain-text file, or inline text via
--text. File content takes priority over inline text.

Example:
  scribe submit essay-3 alice ./essay.pdf
  scribe submit essay-3 alice --text "an essay about rivers"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cfg, cleanup := openService(ctx)
	defer cleanup()

	req := policy.SubmitRequest{
		AssignmentID: args[0],
		StudentID:    args[1],
		Content:      submitText,
	}

	if len(args) == 3 {
		path := args[2]
		info, err := os.Stat(path)
		if err != nil {
			fail(ExitError, "reading upload: %v", err)
		}
		if info.Size() > cfg.MaxUploadBytes {
			fail(ExitError, "upload exceeds %d bytes: %s", cfg.MaxUploadBytes, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fail(ExitError, "reading upload: %v", err)
		}
		req.FileData = data
		req.Filename = filepath.Base(path)
		req.FilePath = path
	}

	result, err := svc.Submit(ctx, req)
	if err != nil {
		fail(ExitError, "submitting: %v", err)
	}

	if humanOutput {
		printResult(result)
	} else {
		_ = outputJSON(result)
	}
	return nil
}

func printResult(result model.Result) {
	fmt.Printf("Attempt:  %s\n", result.AttemptID)
	fmt.Printf("Status:   %s\n", result.Status)
	if result.Reason != "" {
		fmt.Printf("Reason:   %s\n", result.Reason)
	}
	fmt.Printf("Lexical:  %.4f\n", result.LexicalMax)
	fmt.Printf("Semantic: %.4f\n", result.SemanticScore)
}
