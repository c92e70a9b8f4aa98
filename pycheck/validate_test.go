package pycheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/petal-labs/flowport/classify"
	"github.com/petal-labs/flowport/emit"
	"github.com/petal-labs/flowport/flow"
	"github.com/petal-labs/flowport/graph"
	"github.com/petal-labs/flowport/guard"
	"github.com/petal-labs/flowport/state"
)

func emitProgram(t *testing.T, doc *flow.Document) (*emit.Program, *graph.Model, *state.Schema, map[string]classify.Category, map[string]guard.Plan) {
	t.Helper()
	m, err := graph.Build(doc)
	if err != nil {
		t.Fatalf("graph.Build() error = %v", err)
	}
	categories := make(map[string]classify.Category, len(m.Nodes))
	for _, n := range m.Nodes {
		categories[n.ID] = classify.Classify(n.ClassPath)
	}
	schema := state.Infer(m, categories)
	plans := make(map[string]guard.Plan)
	prog, err := emit.Emit(m, schema, categories, plans, emit.Options{})
	if err != nil {
		t.Fatalf("emit.Emit() error = %v", err)
	}
	return prog, m, schema, categories, plans
}

func twoNodeDoc() *flow.Document {
	return &flow.Document{
		Nodes: []flow.NodeSpec{
			{ID: "n1", ClassPath: "langchain.llms.openai.OpenAI", Data: flow.NodeData{Label: "First"}},
			{ID: "n2", ClassPath: "langchain.chains.llm.LLMChain", Data: flow.NodeData{Label: "Second"}},
		},
		Edges: []flow.EdgeSpec{{Source: "n1", Target: "n2"}},
	}
}

func TestValidate_CleanProgram(t *testing.T) {
	prog, _, _, _, _ := emitProgram(t, twoNodeDoc())
	if err := Validate(prog); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_UnregisteredReference(t *testing.T) {
	prog, _, _, _, _ := emitProgram(t, twoNodeDoc())
	prog.EdgeRefs = append(prog.EdgeRefs, "phantom")

	err := Validate(prog)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	found := false
	for _, issue := range valErr.Issues {
		if strings.Contains(issue, "phantom") {
			found = true
		}
	}
	if !found {
		t.Errorf("issues %v do not mention the phantom node", valErr.Issues)
	}
}

func TestValidate_MissingEntry(t *testing.T) {
	prog, _, _, _, _ := emitProgram(t, twoNodeDoc())
	prog.Source = strings.Replace(prog.Source, "graph.add_edge(START,", "graph.add_edge(start,", 1)
	prog.Entry = ""

	err := Validate(prog)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if len(valErr.Issues) < 2 {
		t.Errorf("issues = %v, want both the count and the recorded-entry issue", valErr.Issues)
	}
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	prog, _, _, _, _ := emitProgram(t, twoNodeDoc())
	prog.EdgeRefs = append(prog.EdgeRefs, "phantom")
	prog.Source = strings.Replace(prog.Source, ", END)", ", end)", 1)

	err := Validate(prog)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if len(valErr.Issues) < 2 {
		t.Errorf("checks should run independently, got issues %v", valErr.Issues)
	}
}

func TestRepair_Deterministic(t *testing.T) {
	_, m, schema, categories, plans := emitProgram(t, twoNodeDoc())

	first, err := Repair(m, schema, categories, plans)
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}
	second, err := Repair(m, schema, categories, plans)
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}
	if first.Source != second.Source {
		t.Fatal("two repair passes over the same model differ")
	}
	if err := Validate(first); err != nil {
		t.Fatalf("repaired program failed validation: %v", err)
	}
}

func TestRepair_NormalizesRaggedIndent(t *testing.T) {
	code := "def helper(state):\n        state[\"x\"] = 1\n        return state"
	doc := &flow.Document{
		Nodes: []flow.NodeSpec{
			{ID: "n1", ClassPath: "langflow.custom.CustomComponent",
				Data:   flow.NodeData{Label: "Deep"},
				Inputs: map[string]any{"code": code}},
		},
	}
	m, err := graph.Build(doc)
	if err != nil {
		t.Fatalf("graph.Build() error = %v", err)
	}
	categories := map[string]classify.Category{"n1": classify.Custom}
	schema := state.Infer(m, categories)

	prog, err := Repair(m, schema, categories, nil)
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}
	if !strings.Contains(prog.Source, "        state[\"x\"] = 1") {
		t.Error("repair did not normalize the over-indented body")
	}
	if err := Validate(prog); err != nil {
		t.Fatalf("repaired program failed validation: %v", err)
	}
}
