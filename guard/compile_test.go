package guard

import (
	"reflect"
	"strings"
	"testing"

	"github.com/petal-labs/flowport/flow"
)

func guarded(src, tgt, cond string) flow.EdgeSpec {
	return flow.EdgeSpec{Source: src, Target: tgt, Data: flow.EdgeData{Condition: cond}}
}

func TestCompile_DirectTable(t *testing.T) {
	edges := []flow.EdgeSpec{
		guarded("clf", "greet", "intent == 'greeting'"),
		guarded("clf", "farewell", "intent == 'farewell'"),
		guarded("clf", "fallback", "intent == 'other'"),
	}
	plan := Compile(edges)
	table, ok := plan.(*DirectTable)
	if !ok {
		t.Fatalf("plan = %T, want *DirectTable", plan)
	}
	if table.Field != "intent" {
		t.Errorf("Field = %q, want intent", table.Field)
	}
	if want := []string{"greeting", "farewell", "other"}; !reflect.DeepEqual(table.Values, want) {
		t.Errorf("Values = %v, want %v", table.Values, want)
	}
	if table.Routes["farewell"] != "farewell" {
		t.Errorf("Routes[farewell] = %q, want farewell", table.Routes["farewell"])
	}
}

func TestCompile_DirectTableDuplicateValue(t *testing.T) {
	edges := []flow.EdgeSpec{
		guarded("clf", "first", "intent == 'greeting'"),
		guarded("clf", "second", "intent == 'greeting'"),
	}
	plan := Compile(edges)
	table, ok := plan.(*DirectTable)
	if !ok {
		t.Fatalf("plan = %T, want *DirectTable", plan)
	}
	// Position keeps the first occurrence; the later edge's target wins.
	if !reflect.DeepEqual(table.Values, []string{"greeting"}) {
		t.Errorf("Values = %v, want [greeting]", table.Values)
	}
	if table.Routes["greeting"] != "second" {
		t.Errorf("Routes[greeting] = %q, want second", table.Routes["greeting"])
	}
}

func TestCompile_MixedFieldsBecomeRouter(t *testing.T) {
	edges := []flow.EdgeSpec{
		guarded("clf", "a", "intent == 'greeting'"),
		guarded("clf", "b", "mood == 'happy'"),
	}
	plan := Compile(edges)
	if _, ok := plan.(*SyntheticRouter); !ok {
		t.Fatalf("plan = %T, want *SyntheticRouter", plan)
	}
}

func TestCompile_ComplexPredicatesBecomeRouter(t *testing.T) {
	edges := []flow.EdgeSpec{
		guarded("clf", "long", "len(documents) > 3"),
		guarded("clf", "short", "len(documents) <= 3"),
	}
	plan := Compile(edges)
	router, ok := plan.(*SyntheticRouter)
	if !ok {
		t.Fatalf("plan = %T, want *SyntheticRouter", plan)
	}
	if len(router.Branches) != 2 {
		t.Fatalf("branches = %d, want 2", len(router.Branches))
	}
	if router.DefaultTarget != "short" {
		t.Errorf("DefaultTarget = %q, want short (last edge)", router.DefaultTarget)
	}
	if !strings.Contains(router.Branches[0].Condition, "state.get('documents', [])") {
		t.Errorf("condition not rewritten: %q", router.Branches[0].Condition)
	}
}

func TestCompile_NonStringLiteralBecomesRouter(t *testing.T) {
	edges := []flow.EdgeSpec{
		guarded("clf", "a", "retries == 3"),
		guarded("clf", "b", "retries == 4"),
	}
	plan := Compile(edges)
	if _, ok := plan.(*SyntheticRouter); !ok {
		t.Fatalf("plan = %T, want *SyntheticRouter", plan)
	}
}

func TestCompile_ParseFailureDemotesAll(t *testing.T) {
	edges := []flow.EdgeSpec{
		guarded("clf", "a", "intent == 'greeting'"),
		guarded("clf", "b", "this is not (valid"),
	}
	plan := Compile(edges)
	pass, ok := plan.(*Passthrough)
	if !ok {
		t.Fatalf("plan = %T, want *Passthrough", plan)
	}
	if len(pass.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(pass.Edges))
	}
	if pass.Edges[1].Comment != "this is not (valid" {
		t.Errorf("Comment = %q, want the original guard text", pass.Edges[1].Comment)
	}
	if pass.Edges[0].Target != "a" || pass.Edges[1].Target != "b" {
		t.Errorf("targets = %s, %s; want a, b", pass.Edges[0].Target, pass.Edges[1].Target)
	}
}

func TestCompile_NoEdges(t *testing.T) {
	plan := Compile(nil)
	if _, ok := plan.(*Passthrough); !ok {
		t.Fatalf("plan = %T, want *Passthrough", plan)
	}
}
