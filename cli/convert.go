// Package cli implements the flowport command surface: convert,
// validate, and batch.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/flowport/convert"
	"github.com/petal-labs/flowport/flow"
	"github.com/petal-labs/flowport/graph"
	"github.com/petal-labs/flowport/pycheck"
)

// NewConvertCmd creates the "convert" subcommand.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a Langflow export to a LangGraph script",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: <file>.py next to the input)")
	cmd.Flags().Bool("no-validate", false, "Skip validation of the generated code")
	cmd.Flags().Bool("preview", false, "Print the generated code to stdout instead of writing a file")

	return cmd
}

// runConvert implements the convert pipeline:
//
//	load → build graph → classify → infer state → compile guards
//	→ emit → validate (one repair pass) → write output
func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	outputPath, _ := cmd.Flags().GetString("output")
	noValidate, _ := cmd.Flags().GetBool("no-validate")
	preview, _ := cmd.Flags().GetBool("preview")

	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", inputPath)
		}
		return exitError(exitFileNotFound, "reading file: %s", err)
	}

	if outputPath == "" && !preview {
		base := filepath.Base(inputPath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		outputPath = filepath.Join(filepath.Dir(inputPath), stem+".py")
	}
	if preview {
		outputPath = ""
	}

	result, err := convert.Run(cmd.Context(), convert.Options{
		InputPath:      inputPath,
		OutputPath:     outputPath,
		SkipValidation: noValidate,
	})
	if err != nil {
		return convertExitError(err)
	}

	for _, d := range graph.Warnings(result.Diagnostics) {
		fmt.Fprintf(stderr, "warning: %s\n", d.Message)
	}
	if result.Repaired {
		fmt.Fprintln(stderr, "note: generated code required a repair pass")
	}

	if preview {
		fmt.Fprint(stdout, result.Source)
		return nil
	}

	fmt.Fprintf(stdout, "Converted %s -> %s\n", inputPath, outputPath)
	return nil
}

// convertExitError maps a conversion failure to the exit code its root
// cause deserves.
func convertExitError(err error) error {
	var formatErr *flow.FormatError
	var schemaErr *flow.SchemaError
	var refErr *graph.ReferenceError
	var valErr *pycheck.ValidationError

	switch {
	case errors.As(err, &formatErr), errors.As(err, &schemaErr),
		errors.As(err, &refErr), errors.As(err, &valErr):
		return exitError(exitValidation, "%s", err)
	default:
		return exitError(exitRuntime, "%s", err)
	}
}
