package guard

import "github.com/petal-labs/flowport/flow"

// Plan is the routing strategy compiled for one source node whose
// outgoing edges all carry guards. Targets are node ids; the emitter
// maps them to function names.
type Plan interface {
	plan() // marker method
}

// DirectTable routes on a single shared field compared for string
// equality. Values appear in first-occurrence order; a repeated value
// keeps its position but the later edge's target wins.
type DirectTable struct {
	Field  string
	Values []string
	Routes map[string]string // value -> target node id
}

func (*DirectTable) plan() {}

// SyntheticRouter is an if/elif chain over arbitrary recognized
// predicates. Branches follow edge declaration order; the last edge's
// target doubles as the else branch.
type SyntheticRouter struct {
	Branches      []Branch
	DefaultTarget string
}

// Branch pairs one rewritten predicate with its target node id.
type Branch struct {
	Condition string // Python expression over state
	Target    string
}

func (*SyntheticRouter) plan() {}

// Passthrough is the fallback when no guard could be parsed: the edges
// become unconditional, each annotated with its original guard text.
type Passthrough struct {
	Edges []AnnotatedEdge
}

// AnnotatedEdge is an unconditional edge carrying the guard it could
// not compile.
type AnnotatedEdge struct {
	Target  string
	Comment string
}

func (*Passthrough) plan() {}

type parsedGuard struct {
	expr   Expr
	target string
	guard  string
}

// Compile decides the routing plan for one source's guarded edges.
// Guards that parse cleanly and are all plain string-equality tests on
// one shared field compile to a DirectTable; anything else that parses
// compiles to a SyntheticRouter; a parse failure anywhere demotes the
// whole fan-out to Passthrough. Compile never fails.
func Compile(edges []flow.EdgeSpec) Plan {
	items := make([]parsedGuard, 0, len(edges))
	for _, e := range edges {
		g, _ := e.Guard()
		expr, err := Parse(g)
		if err != nil {
			return passthrough(edges)
		}
		items = append(items, parsedGuard{expr: expr, target: e.Target, guard: g})
	}
	if len(items) == 0 {
		return passthrough(edges)
	}

	if table, ok := tryDirectTable(items); ok {
		return table
	}

	router := &SyntheticRouter{DefaultTarget: items[len(items)-1].target}
	for _, it := range items {
		router.Branches = append(router.Branches, Branch{
			Condition: Python(it.expr),
			Target:    it.target,
		})
	}
	return router
}

// tryDirectTable succeeds only when every guard is field == 'literal'
// over the same field with a string literal on the right.
func tryDirectTable(items []parsedGuard) (*DirectTable, bool) {
	table := &DirectTable{Routes: make(map[string]string)}
	for _, it := range items {
		bin, ok := it.expr.(*BinaryExpr)
		if !ok || bin.Op != TokenEq {
			return nil, false
		}
		field, ok := bin.Left.(*FieldExpr)
		if !ok {
			return nil, false
		}
		lit, ok := bin.Right.(*LiteralExpr)
		if !ok {
			return nil, false
		}
		value, ok := lit.Value.(string)
		if !ok {
			return nil, false
		}
		if table.Field == "" {
			table.Field = field.Name
		} else if table.Field != field.Name {
			return nil, false
		}
		if _, seen := table.Routes[value]; !seen {
			table.Values = append(table.Values, value)
		}
		table.Routes[value] = it.target
	}
	return table, true
}

func passthrough(edges []flow.EdgeSpec) *Passthrough {
	p := &Passthrough{}
	for _, e := range edges {
		g, _ := e.Guard()
		p.Edges = append(p.Edges, AnnotatedEdge{Target: e.Target, Comment: g})
	}
	return p
}
