package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"receiptscan/internal/config"
	"receiptscan/internal/logger"
)

var version = "1.0.0"

// cfg is set by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "receiptscan",
	Short: "Receiptscan - structured data recovery from noisy OCR receipt text",
	Long: `Receiptscan converts imperfect OCR output of retail receipts into
structured, validated data with a confidence score.

It does not perform OCR itself: feed it the already-recognized text of a
receipt and it recovers merchant, tax ID, date, line items, total and
payment details, cross-checks them against each other and reports what it
did and did not find.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the CLI with the loaded configuration.
func Execute(c *config.Config) {
	cfg = c
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
