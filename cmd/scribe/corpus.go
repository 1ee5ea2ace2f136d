package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(corpusCmd)
}

var corpusCmd = &cobra.Command{
	Use:   "corpus <assignment-id>",
	Short: "List the accepted submissions for an assignment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpus,
}

// corpusEntry is one accepted text in the JSON listing.
type corpusEntry struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func runCorpus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, _, cleanup := openService(ctx)
	defer cleanup()

	texts, err := svc.CorpusTexts(ctx, args[0])
	if err != nil {
		fail(ExitError, "listing corpus: %v", err)
	}

	if humanOutput {
		fmt.Printf("%d accepted submission(s) for %s\n", len(texts), args[0])
		for i, text := range texts {
			fmt.Printf("  [%d] %s\n", i+1, truncate(text, 70))
		}
		return nil
	}

	entries := make([]corpusEntry, len(texts))
	for i, text := range texts {
		entries[i] = corpusEntry{Index: i + 1, Text: text}
	}
	return outputJSON(entries)
}

// truncate shortens s to at most n runes for display.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
