package main

import (
	"fmt"

	"github.com/okian/scribe/internal/config"
	"github.com/okian/scribe/internal/domain/semantic"
	"github.com/okian/scribe/pkg/logger"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and encoder availability",
	RunE:  runCheck,
}

// checkReport is the JSON shape of the check result.
type checkReport struct {
	Encoder          string  `json:"encoder"`
	EncoderAvailable bool    `json:"encoder_available"`
	Threshold        float64 `json:"plagiarism_threshold"`
	DBPath           string  `json:"db_path"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := logger.Init(); err != nil {
		fail(ExitError, "initializing logging: %v", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fail(ExitConfigError, "loading config: %v", err)
	}

	report := checkReport{
		Encoder:   cfg.Encoder,
		Threshold: cfg.PlagiarismThreshold,
		DBPath:    cfg.DBPath,
	}

	switch cfg.Encoder {
	case "ollama":
		enc := semantic.NewOllamaEncoder(
			semantic.WithBaseURL(cfg.OllamaURL),
			semantic.WithModel(cfg.OllamaModel),
		)
		report.Encoder = enc.Name()
		report.EncoderAvailable = enc.IsAvailable(ctx) == nil
	default:
		report.EncoderAvailable = true
	}

	if humanOutput {
		fmt.Printf("Encoder:   %s\n", report.Encoder)
		fmt.Printf("Available: %v\n", report.EncoderAvailable)
		fmt.Printf("Threshold: %.2f\n", report.Threshold)
		fmt.Printf("Store:     %s\n", report.DBPath)
		if !report.EncoderAvailable {
			fmt.Println("hint: is ollama running and the model pulled?")
		}
		return nil
	}
	return outputJSON(report)
}
