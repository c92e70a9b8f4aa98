package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/petal-labs/flowport/batch"
)

const summaryRounding = time.Millisecond

// NewBatchCmd creates the "batch" subcommand.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Convert every flow document under a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	cmd.Flags().StringP("output", "o", "", "Output directory (default: alongside the inputs)")
	cmd.Flags().String("ledger", "", "SQLite ledger path for recording conversion outcomes")
	cmd.Flags().String("schedule", "", "Cron expression (UTC, 5 fields) to re-run the batch until interrupted")
	cmd.Flags().Bool("no-validate", false, "Skip validation of the generated code")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	outputDir, _ := cmd.Flags().GetString("output")
	ledger, _ := cmd.Flags().GetString("ledger")
	schedule, _ := cmd.Flags().GetString("schedule")
	noValidate, _ := cmd.Flags().GetBool("no-validate")

	info, err := os.Stat(inputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "directory not found: %s", inputDir)
		}
		return exitError(exitFileNotFound, "reading directory: %s", err)
	}
	if !info.IsDir() {
		return exitError(exitValidation, "not a directory: %s", inputDir)
	}

	summary, err := batch.Convert(cmd.Context(), batch.Options{
		InputDir:       inputDir,
		OutputDir:      outputDir,
		LedgerDSN:      ledger,
		Schedule:       schedule,
		SkipValidation: noValidate,
	})
	if err != nil {
		return exitError(exitRuntime, "%s", err)
	}

	for path, convErr := range summary.Failures {
		fmt.Fprintf(stderr, "failed: %s: %s\n", path, convErr)
	}
	fmt.Fprintf(stdout, "Converted %d file(s), %d failure(s) in %s\n",
		summary.Converted, summary.Failed, summary.Elapsed.Round(summaryRounding))

	if summary.Failed > 0 {
		return exitError(exitValidation, "batch completed with %d failure(s)", summary.Failed)
	}
	return nil
}
