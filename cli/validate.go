package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/flowport/flow"
	"github.com/petal-labs/flowport/graph"
)

// NewValidateCmd creates the "validate" subcommand.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a flow document without converting",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")
	cmd.Flags().Bool("strict", false, "Treat warnings as errors")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")
	out := cmd.OutOrStdout()

	doc, err := flow.Load(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", filePath)
		}
		return exitError(exitValidation, "%s", err)
	}

	model, err := graph.Build(doc)
	if err != nil {
		return exitError(exitValidation, "%s", err)
	}

	diags := model.Diagnostics()
	printDiagnostics(out, diags, format)

	hasErrs := graph.HasErrors(diags)
	hasWarns := len(graph.Warnings(diags)) > 0

	if hasErrs || (strict && hasWarns) {
		return exitError(exitValidation, "validation failed")
	}

	return nil
}

// printDiagnostics renders diagnostics in the requested format.
func printDiagnostics(out io.Writer, diags []graph.Diagnostic, format string) {
	if format == "json" {
		if diags == nil {
			diags = []graph.Diagnostic{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(diags)
		return
	}

	if len(diags) == 0 {
		fmt.Fprintln(out, "Valid")
		return
	}
	for _, d := range diags {
		if d.Path != "" {
			fmt.Fprintf(out, "%s [%s] %s (%s)\n", d.Severity, d.Code, d.Message, d.Path)
		} else {
			fmt.Fprintf(out, "%s [%s] %s\n", d.Severity, d.Code, d.Message)
		}
	}
}
