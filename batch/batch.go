// Package batch converts every flow document under a directory,
// optionally on a cron schedule, recording outcomes in a SQLite ledger.
// Each file gets a fresh pipeline; one bad document never stops the
// rest.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petal-labs/flowport/convert"
)

// Options configures a batch run.
type Options struct {
	// InputDir is the directory walked for flow documents
	// (.json, .yaml, .yml).
	InputDir string

	// OutputDir receives one .py file per converted document, named
	// after the input. Defaults to InputDir.
	OutputDir string

	// LedgerDSN, when set, opens a SQLite ledger and appends one record
	// per conversion.
	LedgerDSN string

	// Schedule, when set, re-runs the batch on a UTC cron schedule
	// until the context ends.
	Schedule string

	// SkipValidation passes through to each conversion.
	SkipValidation bool

	// EventHandler, when set, receives each conversion's events.
	EventHandler convert.EventHandler
}

// Summary reports one batch pass.
type Summary struct {
	Converted int
	Failed    int
	Failures  map[string]error // input path -> error
	Elapsed   time.Duration
}

// Convert runs one batch pass, or keeps re-running on the configured
// schedule until ctx is done. The summary of the last completed pass is
// returned.
func Convert(ctx context.Context, opts Options) (*Summary, error) {
	if opts.InputDir == "" {
		return nil, fmt.Errorf("input directory is required")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.InputDir
	}

	var ledger *Ledger
	if opts.LedgerDSN != "" {
		var err error
		ledger, err = OpenLedger(opts.LedgerDSN)
		if err != nil {
			return nil, err
		}
		defer ledger.Close()
	}

	if opts.Schedule == "" {
		return runPass(ctx, opts, ledger)
	}

	if _, err := parseCronExpressionUTC(opts.Schedule); err != nil {
		return nil, err
	}

	var last *Summary
	for {
		summary, err := runPass(ctx, opts, ledger)
		if err != nil {
			return last, err
		}
		last = summary

		next, err := nextCronRunUTC(opts.Schedule, time.Now())
		if err != nil {
			return last, err
		}
		select {
		case <-ctx.Done():
			return last, nil
		case <-time.After(time.Until(next)):
		}
	}
}

// runPass walks the input directory once and converts every flow
// document found.
func runPass(ctx context.Context, opts Options, ledger *Ledger) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Failures: make(map[string]error)}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	err := filepath.WalkDir(opts.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isFlowDocument(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		outPath := outputPathFor(opts.OutputDir, path)
		result, convErr := convert.Run(ctx, convert.Options{
			InputPath:      path,
			OutputPath:     outPath,
			SkipValidation: opts.SkipValidation,
			EventHandler:   opts.EventHandler,
		})

		rec := Record{
			InputPath:   path,
			OutputPath:  outPath,
			ConvertedAt: time.Now(),
		}
		if convErr != nil {
			summary.Failed++
			summary.Failures[path] = convErr
			rec.ID = uuid.NewString()
			rec.Status = StatusFailed
			rec.Error = convErr.Error()
		} else {
			summary.Converted++
			rec.ID = result.ConversionID
			rec.Status = StatusOK
			rec.Repaired = result.Repaired
			rec.Duration = result.Elapsed
		}
		if ledger != nil {
			if err := ledger.Append(rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func isFlowDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// outputPathFor maps an input document to its generated script path.
func outputPathFor(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".py")
}
