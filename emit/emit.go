package emit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/petal-labs/flowport/classify"
	"github.com/petal-labs/flowport/flow"
	"github.com/petal-labs/flowport/graph"
	"github.com/petal-labs/flowport/guard"
	"github.com/petal-labs/flowport/state"
)

var funcDefPattern = regexp.MustCompile(`def\s+(\w+)\s*\(([^)]*)\)\s*:`)

// Emit renders the model into a LangGraph Python program. Sections
// appear in fixed order: imports, state class, node functions with
// registrations in document order, edges, entry/finish, compile, and
// the bootstrap block. Entry is the first node in document order and
// finish the last; exports order their nodes top to bottom, so the
// document order is the flow order.
func Emit(m *graph.Model, schema *state.Schema, categories map[string]classify.Category, plans map[string]guard.Plan, opts Options) (*Program, error) {
	return EmitWith(m, schema, categories, plans, CategoryBodies{}, opts)
}

// EmitWith renders with a caller-supplied body generator.
func EmitWith(m *graph.Model, schema *state.Schema, categories map[string]classify.Category, plans map[string]guard.Plan, bodies NodeBodyGenerator, opts Options) (*Program, error) {
	if len(m.Nodes) == 0 {
		return nil, &GenerationError{Reason: "flow has no nodes"}
	}

	names := nodeNames(m)
	prog := &Program{}
	var b strings.Builder

	writeImports(&b)
	writeStateClass(&b, schema)

	b.WriteString("def create_graph():\n")
	b.WriteString("    graph = StateGraph(GraphState)\n\n")

	for _, n := range m.Nodes {
		name := names[n.ID]
		cat := categories[n.ID]
		writeNodeFunction(&b, prog, name, n, cat, bodies, opts)
	}

	writeEdges(&b, prog, m, names, plans)
	writeEntryFinish(&b, prog, m, names)

	b.WriteString("\n    return graph.compile()\n")

	b.WriteString("\n\nif __name__ == \"__main__\":\n")
	b.WriteString("    app = create_graph()\n")
	b.WriteString("    result = app.invoke({\"input\": \"Test input\"})\n")
	b.WriteString("    print(result)\n")

	prog.Source = b.String()
	return prog, nil
}

func writeImports(b *strings.Builder) {
	b.WriteString("from langgraph.graph import StateGraph, START, END\n")
	b.WriteString("from typing import TypedDict, List, Dict, Any\n")
	b.WriteString("\n\n")
}

// writeStateClass renders the GraphState TypedDict in schema insertion
// order.
func writeStateClass(b *strings.Builder, schema *state.Schema) {
	b.WriteString("class GraphState(TypedDict):\n")
	for _, field := range schema.Fields() {
		pyType, _ := schema.Type(field)
		fmt.Fprintf(b, "    %s: %s\n", field, annotation(pyType))
	}
	b.WriteString("\n\n")
}

func annotation(pyType string) string {
	switch pyType {
	case state.TypeStr, state.TypeInt, state.TypeFloat, state.TypeBool:
		return pyType
	case state.TypeList:
		return "List[Any]"
	case state.TypeDict:
		return "Dict[str, Any]"
	default:
		return "Any"
	}
}

// writeNodeFunction emits one node's function and registration. Nodes
// carrying custom code keep it verbatim, re-homed under the cleaned
// name; everything else gets its category template.
func writeNodeFunction(b *strings.Builder, prog *Program, name string, n flow.NodeSpec, cat classify.Category, bodies NodeBodyGenerator, opts Options) {
	if code, ok := n.Code(); ok {
		writeCustomFunction(b, name, code, opts)
	} else {
		fmt.Fprintf(b, "    def %s(state):\n", name)
		for _, line := range bodies.Body(name, n, cat) {
			if line == "" {
				b.WriteString("\n")
			} else {
				b.WriteString("        " + line + "\n")
			}
		}
	}
	fmt.Fprintf(b, "    graph.add_node(\"%s\", %s)\n\n", name, name)
	prog.Registered = append(prog.Registered, name)
}

// writeCustomFunction re-homes embedded Python under the cleaned node
// name. The def header lands at function level inside create_graph;
// body lines keep their own relative indentation.
func writeCustomFunction(b *strings.Builder, name, code string, opts Options) {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	lines := strings.Split(strings.Trim(code, "\n"), "\n")

	if loc := funcDefPattern.FindStringSubmatchIndex(code); loc != nil {
		if opts.NormalizeBodies {
			lines = normalizeIndent(lines)
		}
		headerSeen := false
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				b.WriteString("\n")
				continue
			}
			if !headerSeen && strings.HasPrefix(trimmed, "def ") {
				// Rename the first function to the cleaned node name.
				renamed := funcDefPattern.ReplaceAllString(trimmed, "def "+name+"($2):")
				b.WriteString("    " + renamed + "\n")
				headerSeen = true
				continue
			}
			if !headerSeen {
				b.WriteString("    " + trimmed + "\n")
				continue
			}
			b.WriteString("    " + indentTail(line) + "\n")
		}
		return
	}

	// No function definition: wrap the snippet.
	fmt.Fprintf(b, "    def %s(state):\n", name)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("        " + strings.TrimSpace(line) + "\n")
	}
	b.WriteString("        return state\n")
}

// indentTail preserves a body line's indentation relative to the
// original function body.
func indentTail(line string) string {
	return strings.TrimRight(line, " \t")
}

// normalizeIndent dedents all lines after the def header so the
// shallowest body line sits one level in. Used by the repair pass to
// fix exports whose embedded code carries inconsistent indentation.
func normalizeIndent(lines []string) []string {
	minIndent := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "def ") && i == 0 {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out[i] = ""
			continue
		}
		if strings.HasPrefix(trimmed, "def ") && i == 0 {
			out[i] = trimmed
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if indent >= minIndent {
			out[i] = strings.Repeat(" ", 4+indent-minIndent) + trimmed
		} else {
			out[i] = "    " + trimmed
		}
	}
	return out
}

// writeEdges renders the edge section: direct edges per source, then
// the compiled plan for sources whose edges all carry guards.
func writeEdges(b *strings.Builder, prog *Program, m *graph.Model, names map[string]string, plans map[string]guard.Plan) {
	b.WriteString("    # --- Edges ---\n")

	for _, sourceID := range m.Sources() {
		src := names[sourceID]
		edges := m.EdgesFrom(sourceID)

		plan, ok := plans[sourceID]
		if !ok {
			for _, e := range edges {
				tgt := names[e.Target]
				fmt.Fprintf(b, "    graph.add_edge(\"%s\", \"%s\")\n", src, tgt)
				prog.EdgeRefs = append(prog.EdgeRefs, src, tgt)
			}
			continue
		}

		switch p := plan.(type) {
		case *guard.DirectTable:
			writeDirectTable(b, prog, src, p, names)
		case *guard.SyntheticRouter:
			writeSyntheticRouter(b, prog, src, p, names)
		case *guard.Passthrough:
			for _, e := range p.Edges {
				tgt := names[e.Target]
				fmt.Fprintf(b, "    # Condition: %s\n", e.Comment)
				fmt.Fprintf(b, "    graph.add_edge(\"%s\", \"%s\")\n", src, tgt)
				prog.EdgeRefs = append(prog.EdgeRefs, src, tgt)
			}
		}
	}
}

func writeDirectTable(b *strings.Builder, prog *Program, src string, p *guard.DirectTable, names map[string]string) {
	fmt.Fprintf(b, "\n    # Conditional routing based on %s\n", p.Field)
	b.WriteString("    graph.add_conditional_edges(\n")
	fmt.Fprintf(b, "        \"%s\",\n", src)
	fmt.Fprintf(b, "        lambda state: state.get(\"%s\", \"\"),\n", p.Field)
	b.WriteString("        {\n")
	for _, value := range p.Values {
		tgt := names[p.Routes[value]]
		fmt.Fprintf(b, "            \"%s\": \"%s\",\n", value, tgt)
		prog.EdgeRefs = append(prog.EdgeRefs, tgt)
	}
	b.WriteString("        }\n")
	b.WriteString("    )\n")
	prog.EdgeRefs = append(prog.EdgeRefs, src)
}

// writeSyntheticRouter emits the router function, registers it as a
// node, and wires the source through it to every branch target.
func writeSyntheticRouter(b *strings.Builder, prog *Program, src string, p *guard.SyntheticRouter, names map[string]string) {
	routerName := src + "_router"

	fmt.Fprintf(b, "\n    # Complex conditional routing from %s\n", src)
	fmt.Fprintf(b, "    def %s(state):\n", routerName)
	for i, branch := range p.Branches {
		keyword := "if"
		if i > 0 {
			keyword = "elif"
		}
		fmt.Fprintf(b, "        %s %s:\n", keyword, branch.Condition)
		fmt.Fprintf(b, "            return \"%s\"\n", names[branch.Target])
	}
	b.WriteString("        else:\n")
	fmt.Fprintf(b, "            return \"%s\"\n", names[p.DefaultTarget])

	b.WriteString("\n")
	fmt.Fprintf(b, "    graph.add_node(\"%s\", %s)\n", routerName, routerName)
	fmt.Fprintf(b, "    graph.add_edge(\"%s\", \"%s\")\n", src, routerName)
	prog.Registered = append(prog.Registered, routerName)
	prog.EdgeRefs = append(prog.EdgeRefs, src, routerName)

	seen := make(map[string]bool)
	var targets []string
	for _, branch := range p.Branches {
		tgt := names[branch.Target]
		if !seen[tgt] {
			seen[tgt] = true
			targets = append(targets, tgt)
		}
	}
	if tgt := names[p.DefaultTarget]; !seen[tgt] {
		targets = append(targets, tgt)
	}

	b.WriteString("    graph.add_conditional_edges(\n")
	fmt.Fprintf(b, "        \"%s\",\n", routerName)
	fmt.Fprintf(b, "        lambda state: %s(state),\n", routerName)
	b.WriteString("        {\n")
	for _, tgt := range targets {
		fmt.Fprintf(b, "            \"%s\": \"%s\",\n", tgt, tgt)
		prog.EdgeRefs = append(prog.EdgeRefs, tgt)
	}
	b.WriteString("        }\n")
	b.WriteString("    )\n")
}

func writeEntryFinish(b *strings.Builder, prog *Program, m *graph.Model, names map[string]string) {
	first := names[m.Nodes[0].ID]
	last := names[m.Nodes[len(m.Nodes)-1].ID]

	b.WriteString("\n    # --- Entry and Finish ---\n")
	fmt.Fprintf(b, "    graph.add_edge(START, \"%s\")\n", first)
	fmt.Fprintf(b, "    graph.add_edge(\"%s\", END)\n", last)

	prog.Entry = first
	prog.Finish = last
	prog.EdgeRefs = append(prog.EdgeRefs, first, last)
}
