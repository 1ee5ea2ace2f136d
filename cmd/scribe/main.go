// Package main provides the scribe CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Submission originality checker",
	Long: `scribe screens student submissions for originality.

Each submission is extracted to plain text, screened lexically against
every previously accepted submission for the same assignment, scored
semantically against the assignment's reference text, and then either
accepted into the corpus or rejected. All commands output JSON by
default for easy integration with grading tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
