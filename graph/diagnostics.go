package graph

import "fmt"

// Diagnostic is an advisory finding about a flow graph. Diagnostics
// never stop a conversion; the validate command surfaces them and
// --strict promotes warnings to a non-zero exit.
type Diagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// HasErrors returns true if any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns only the warning-severity diagnostics.
func Warnings(diags []Diagnostic) []Diagnostic {
	var warns []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			warns = append(warns, d)
		}
	}
	return warns
}

// Diagnostics inspects the model for conditions worth reporting:
//   - FG-001: duplicate node ids (error)
//   - FG-002: orphan nodes with no inbound or outbound edges (warning)
//   - FG-003: cycles (warning; LangGraph graphs may loop legitimately)
func (m *Model) Diagnostics() []Diagnostic {
	var diags []Diagnostic

	seen := make(map[string]bool, len(m.Nodes))
	for i, n := range m.Nodes {
		if seen[n.ID] {
			diags = append(diags, Diagnostic{
				Code:     "FG-001",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Duplicate node ID %q", n.ID),
				Path:     fmt.Sprintf("nodes[%d].id", i),
			})
		}
		seen[n.ID] = true
	}

	if len(m.Nodes) > 1 {
		hasInbound := make(map[string]bool)
		hasOutbound := make(map[string]bool)
		for _, e := range m.Edges {
			hasOutbound[e.Source] = true
			hasInbound[e.Target] = true
		}
		for i, n := range m.Nodes {
			if !hasInbound[n.ID] && !hasOutbound[n.ID] {
				diags = append(diags, Diagnostic{
					Code:     "FG-002",
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("Node %q has no inbound or outbound edges", n.ID),
					Path:     fmt.Sprintf("nodes[%d]", i),
				})
			}
		}
	}

	if cycle := m.detectCycle(); cycle != "" {
		diags = append(diags, Diagnostic{
			Code:     "FG-003",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Graph contains a cycle: %s", cycle),
		})
	}

	return diags
}

// detectCycle uses Kahn's algorithm. Returns a description of the
// nodes left unsorted, or empty string if the graph is acyclic.
func (m *Model) detectCycle() string {
	inDegree := make(map[string]int, len(m.Nodes))
	successors := make(map[string][]string)
	for _, n := range m.Nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range m.Edges {
		successors[e.Source] = append(successors[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]string, 0)
	for _, n := range m.Nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited++
		for _, succ := range successors[current] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if visited < len(m.Nodes) {
		var cycleNodes []string
		for _, n := range m.Nodes {
			if inDegree[n.ID] > 0 {
				cycleNodes = append(cycleNodes, n.ID)
			}
		}
		return fmt.Sprintf("nodes involved: %v", cycleNodes)
	}
	return ""
}
