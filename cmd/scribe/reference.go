package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var referenceText string

func init() {
	referenceSetCmd.Flags().StringVar(&referenceText, "text", "", "Inline reference text")
	referenceCmd.AddCommand(referenceSetCmd)
	rootCmd.AddCommand(referenceCmd)
}

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Manage assignment reference texts",
}

var referenceSetCmd = &cobra.Command{
	Use:   "set <assignment-id> [file]",
	Short: "Install or replace an assignment's reference text",
	Long: `Install or replace the reference text used for semantic scoring.

The reference may be a PDF, DOCX or plain-text file, or inline text via
--text. Files go through the same text extraction as submissions.

Example:
  scribe reference set essay-3 ./model-answer.docx
  scribe reference set essay-3 --text "a model answer"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runReferenceSet,
}

func runReferenceSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cfg, cleanup := openService(ctx)
	defer cleanup()

	var data []byte
	var filename string
	if len(args) == 2 {
		path := args[1]
		info, err := os.Stat(path)
		if err != nil {
			fail(ExitError, "reading reference file: %v", err)
		}
		if info.Size() > cfg.MaxUploadBytes {
			fail(ExitError, "reference exceeds %d bytes: %s", cfg.MaxUploadBytes, path)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			fail(ExitError, "reading reference file: %v", err)
		}
		filename = filepath.Base(path)
	}
	if len(data) == 0 && referenceText == "" {
		fail(ExitError, "no reference text given; pass a file or --text")
	}

	if err := svc.SetReferenceUpload(ctx, args[0], data, filename, referenceText); err != nil {
		fail(ExitError, "setting reference: %v", err)
	}

	if humanOutput {
		outputHuman("reference set for %s\n", args[0])
	} else {
		_ = outputJSON(map[string]string{"assignment_id": args[0], "status": "reference set"})
	}
	return nil
}
