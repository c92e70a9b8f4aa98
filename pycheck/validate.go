// Package pycheck validates emitted programs before they reach disk:
// structural checks against the program's registration facts plus a
// lightweight Python block-structure syntax check. Repair never patches
// text; it re-emits from the retained model.
package pycheck

import (
	"fmt"
	"strings"

	"github.com/petal-labs/flowport/classify"
	"github.com/petal-labs/flowport/emit"
	"github.com/petal-labs/flowport/graph"
	"github.com/petal-labs/flowport/guard"
	"github.com/petal-labs/flowport/state"
)

// ValidationError collects every check failure for one program. All
// checks run independently so the caller sees the full picture.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated code failed validation: %s", strings.Join(e.Issues, "; "))
}

// Validate runs all checks against the program. A nil return means the
// program is structurally sound and the text parses as Python blocks.
func Validate(p *emit.Program) error {
	var issues []string

	issues = append(issues, checkReferences(p)...)
	issues = append(issues, checkEntryFinish(p)...)
	if err := checkSyntax(p.Source); err != nil {
		issues = append(issues, err.Error())
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// checkReferences verifies every node name used by an edge, entry, or
// finish line was registered with graph.add_node.
func checkReferences(p *emit.Program) []string {
	registered := make(map[string]bool, len(p.Registered))
	for _, name := range p.Registered {
		registered[name] = true
	}
	var issues []string
	seen := make(map[string]bool)
	for _, ref := range p.EdgeRefs {
		if !registered[ref] && !seen[ref] {
			seen[ref] = true
			issues = append(issues, fmt.Sprintf("edge references unregistered node %q", ref))
		}
	}
	return issues
}

// checkEntryFinish verifies the program wires exactly one entry and one
// finish point.
func checkEntryFinish(p *emit.Program) []string {
	var issues []string
	entries := strings.Count(p.Source, "graph.add_edge(START,")
	finishes := strings.Count(p.Source, ", END)")
	if entries != 1 {
		issues = append(issues, fmt.Sprintf("expected exactly one entry point, found %d", entries))
	}
	if finishes != 1 {
		issues = append(issues, fmt.Sprintf("expected exactly one finish point, found %d", finishes))
	}
	if p.Entry == "" {
		issues = append(issues, "no entry node recorded")
	}
	if p.Finish == "" {
		issues = append(issues, "no finish node recorded")
	}
	return issues
}

// Repair deterministically re-emits the program from the retained
// intermediate model with custom-body indentation normalization. Two
// repair passes over the same model produce identical output, so the
// conversion entry point invokes it at most once.
func Repair(m *graph.Model, schema *state.Schema, categories map[string]classify.Category, plans map[string]guard.Plan) (*emit.Program, error) {
	return emit.Emit(m, schema, categories, plans, emit.Options{NormalizeBodies: true})
}
