// Package convert runs the full flow-to-LangGraph pipeline for a
// single document: load, graph resolution, classification, state
// inference, guard compilation, emission, and validation with at most
// one repair pass. Output is written only after validation succeeds.
package convert

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/petal-labs/flowport/classify"
	"github.com/petal-labs/flowport/emit"
	"github.com/petal-labs/flowport/flow"
	"github.com/petal-labs/flowport/graph"
	"github.com/petal-labs/flowport/guard"
	"github.com/petal-labs/flowport/pycheck"
	"github.com/petal-labs/flowport/state"
)

// Options configures a single conversion.
type Options struct {
	// InputPath is the flow document to convert.
	InputPath string

	// OutputPath, when set, receives the generated script. The file is
	// written only after validation completes; a failed conversion
	// leaves no partial output.
	OutputPath string

	// SkipValidation disables the validate/repair pass.
	SkipValidation bool

	// EventHandler, when set, receives pipeline progress events.
	EventHandler EventHandler
}

// Result carries the outcome of a conversion.
type Result struct {
	ConversionID string
	Source       string
	Repaired     bool
	Diagnostics  []graph.Diagnostic
	Elapsed      time.Duration
}

// Run converts one flow document. It returns the generated source and
// a *Error tagged with the failing stage on error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()
	events := opts.EventHandler
	if events == nil {
		events = func(Event) {}
	}

	started := NewEvent(EventConversionStarted, id)
	started.Input = opts.InputPath
	events(started)

	fail := func(stage Stage, err error) (*Result, error) {
		wrapped := &Error{Stage: stage, Err: err}
		ev := NewEvent(EventConversionFailed, id).WithStage(stage).WithElapsed(time.Since(start))
		ev.Err = wrapped
		events(ev)
		return nil, wrapped
	}

	stageDone := func(stage Stage, since time.Time) {
		events(NewEvent(EventStageFinished, id).WithStage(stage).WithElapsed(time.Since(since)))
	}

	if err := ctx.Err(); err != nil {
		return fail(StageLoad, err)
	}

	stageStart := time.Now()
	doc, err := flow.Load(opts.InputPath)
	if err != nil {
		return fail(StageLoad, err)
	}
	stageDone(StageLoad, stageStart)

	stageStart = time.Now()
	model, err := graph.Build(doc)
	if err != nil {
		return fail(StageGraph, err)
	}
	diags := model.Diagnostics()
	stageDone(StageGraph, stageStart)

	if err := ctx.Err(); err != nil {
		return fail(StageClassify, err)
	}

	stageStart = time.Now()
	categories := make(map[string]classify.Category, len(model.Nodes))
	for _, n := range model.Nodes {
		categories[n.ID] = classify.Classify(n.ClassPath)
	}
	stageDone(StageClassify, stageStart)

	stageStart = time.Now()
	schema := state.Infer(model, categories)
	stageDone(StageState, stageStart)

	stageStart = time.Now()
	plans := compilePlans(model)
	stageDone(StageGuard, stageStart)

	if err := ctx.Err(); err != nil {
		return fail(StageEmit, err)
	}

	stageStart = time.Now()
	prog, err := emit.Emit(model, schema, categories, plans, emit.Options{})
	if err != nil {
		return fail(StageEmit, err)
	}
	stageDone(StageEmit, stageStart)

	repaired := false
	if !opts.SkipValidation {
		stageStart = time.Now()
		if verr := pycheck.Validate(prog); verr != nil {
			events(NewEvent(EventRepairAttempted, id).WithStage(StageValidate))
			prog, err = pycheck.Repair(model, schema, categories, plans)
			if err != nil {
				return fail(StageValidate, err)
			}
			repaired = true
			if verr := pycheck.Validate(prog); verr != nil {
				return fail(StageValidate, verr)
			}
		}
		stageDone(StageValidate, stageStart)
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(prog.Source), 0o644); err != nil {
			return fail(StageWrite, fmt.Errorf("writing %s: %w", opts.OutputPath, err))
		}
	}

	events(NewEvent(EventConversionFinished, id).WithElapsed(time.Since(start)))

	return &Result{
		ConversionID: id,
		Source:       prog.Source,
		Repaired:     repaired,
		Diagnostics:  diags,
		Elapsed:      time.Since(start),
	}, nil
}

// compilePlans builds a routing plan for every source whose outgoing
// edges all carry guards. Mixed or unguarded fan-outs emit as plain
// edges.
func compilePlans(m *graph.Model) map[string]guard.Plan {
	plans := make(map[string]guard.Plan)
	for _, src := range m.Sources() {
		edges := m.EdgesFrom(src)
		if len(edges) == 0 {
			continue
		}
		allGuarded := true
		for _, e := range edges {
			if _, ok := e.Guard(); !ok {
				allGuarded = false
				break
			}
		}
		if allGuarded {
			plans[src] = guard.Compile(edges)
		}
	}
	return plans
}
