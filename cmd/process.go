package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"receiptscan/internal/history"
	"receiptscan/internal/logger"
	"receiptscan/internal/receipt"
)

var processCmd = &cobra.Command{
	Use:   "process [text-file]",
	Short: "Process OCR receipt text into structured, validated data",
	Long: `Process reads the OCR-recognized text of one receipt and extracts
structured fields (establishment, tax ID, date, time, line items, total,
payment method) together with a confidence score and per-field validation
outcomes.

Pass "-" as the file name to read from stdin.`,
	Example: `  # Process a receipt text file and print a report
  receiptscan process receipt.txt

  # Emit the full result as JSON
  receiptscan process receipt.txt --json

  # Read from stdin and store the result in the history database
  cat receipt.txt | receiptscan process - --store`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	processCmd.Flags().Bool("json", false, "Output the full result as JSON")
	processCmd.Flags().Bool("store", false, "Store the result in the history database")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	store, _ := cmd.Flags().GetBool("store")

	source := args[0]
	text, err := readInput(source)
	if err != nil {
		log.Error().Err(err).Str("source", source).Msg("Failed to read input")
		return err
	}

	result := receipt.NewProcessor().Process(text)

	log.Info().
		Str("source", source).
		Float64("confidence", result.Confidence).
		Int("items", len(result.Data.Items)).
		Msg("Receipt processed")

	if store {
		if err := storeResult(source, result); err != nil {
			return err
		}
	}

	return writeResult(result, outputPath, jsonOutput)
}

func readInput(source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	return string(data), nil
}

func storeResult(source string, result receipt.ProcessedResult) error {
	log := logger.WithComponent("process")

	store, err := history.NewBoltStore(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	name := source
	if name != "-" {
		name = filepath.Base(name)
	}
	entry, err := store.Save(name, result)
	if err != nil {
		return fmt.Errorf("storing result: %w", err)
	}

	log.Info().
		Str("id", entry.ID).
		Str("db", cfg.HistoryPath).
		Msg("Result stored")
	return nil
}

func writeResult(result receipt.ProcessedResult, outputPath string, jsonOutput bool) error {
	var output []byte

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		output = data
	} else {
		output = []byte(formatReport(result))
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, output, 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}

	fmt.Println(string(output))
	return nil
}

// formatReport renders a ProcessedResult as a human-readable summary.
func formatReport(result receipt.ProcessedResult) string {
	var b strings.Builder

	data := result.Data
	if data.Establishment != "" {
		fmt.Fprintf(&b, "Establishment: %s\n", data.Establishment)
	}
	if data.TaxID != "" {
		fmt.Fprintf(&b, "Tax ID:        %s\n", data.TaxID)
	}
	if data.Date != "" {
		fmt.Fprintf(&b, "Date:          %s\n", data.Date)
	}
	if data.Time != "" {
		fmt.Fprintf(&b, "Time:          %s\n", data.Time)
	}
	if len(data.Items) > 0 {
		fmt.Fprintf(&b, "Items:\n")
		for _, item := range data.Items {
			fmt.Fprintf(&b, "  %-28s %5s x %8.2f = %8.2f\n",
				item.Description, item.Quantity, item.UnitPrice, item.TotalPrice)
		}
	}
	if data.TotalValue != nil {
		approx := ""
		if data.TotalIsApproximate {
			approx = " (approximate)"
		}
		fmt.Fprintf(&b, "Total:         R$ %.2f%s\n", *data.TotalValue, approx)
	}
	if data.PaymentMethod != "" {
		fmt.Fprintf(&b, "Payment:       %s\n", data.PaymentMethod)
	}

	fmt.Fprintf(&b, "\nConfidence: %.0f%%\n\nValidations:\n", result.Confidence*100)
	for _, v := range result.Validations {
		mark := "ok "
		if !v.Success {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "  [%-4s] %-14s %s\n", mark, v.Field, v.Message)
	}

	return b.String()
}
