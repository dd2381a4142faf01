package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"receiptscan/internal/corpus"
	"receiptscan/internal/receipt"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List or run the bundled OCR sample receipts",
	Long: `Examples ships a small corpus of OCR outputs graded by degradation
level, from a clean supermarket coupon to a heavily corrupted corner-market
receipt. Without arguments it lists the corpus; with a name it runs that
sample through the pipeline.`,
	Example: `  # List the bundled samples
  receiptscan examples

  # Process the pharmacy sample and show the result as JSON
  receiptscan examples pharmacy --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)

	examplesCmd.Flags().Bool("json", false, "Output the full result as JSON")
	examplesCmd.Flags().Bool("text", false, "Print the raw sample text instead of processing it")
}

func runExamples(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listExamples()
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	rawText, _ := cmd.Flags().GetBool("text")

	example, err := corpus.Find(args[0])
	if err != nil {
		return err
	}

	if rawText {
		fmt.Println(example.Text)
		return nil
	}

	result := receipt.NewProcessor().Process(example.Text)
	return writeResult(result, "", jsonOutput)
}

func listExamples() error {
	examples, err := corpus.Load()
	if err != nil {
		return err
	}

	for _, example := range examples {
		fmt.Printf("%-14s %-12s %s\n", example.Name, example.Difficulty, example.Description)
	}
	return nil
}
