// Package graph resolves a loaded flow document into the intermediate
// model the rest of the pipeline consumes: nodes keyed by id, edges
// grouped by source, document order preserved throughout.
package graph

import (
	"fmt"

	"github.com/petal-labs/flowport/flow"
)

// Model is the resolved graph for one conversion. Node and edge order
// follows the source document so downstream output is deterministic.
type Model struct {
	Nodes []flow.NodeSpec
	Edges []flow.EdgeSpec

	byID     map[string]int
	bySource map[string][]flow.EdgeSpec
	order    []string
}

// ReferenceError reports an edge endpoint naming a node that does not
// exist in the document. End is "source" or "target".
type ReferenceError struct {
	ID  string
	End string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("edge %s %q references unknown node", e.End, e.ID)
}

// Build resolves the document into a Model. The first edge endpoint
// that does not name a known node fails the build with a
// *ReferenceError; a flow wired to phantom nodes cannot produce a
// runnable script.
func Build(doc *flow.Document) (*Model, error) {
	m := &Model{
		Nodes:    doc.Nodes,
		Edges:    doc.Edges,
		byID:     make(map[string]int, len(doc.Nodes)),
		bySource: make(map[string][]flow.EdgeSpec),
	}
	for i, n := range doc.Nodes {
		if _, dup := m.byID[n.ID]; !dup {
			m.byID[n.ID] = i
		}
	}
	for _, e := range doc.Edges {
		if _, ok := m.byID[e.Source]; !ok {
			return nil, &ReferenceError{ID: e.Source, End: "source"}
		}
		if _, ok := m.byID[e.Target]; !ok {
			return nil, &ReferenceError{ID: e.Target, End: "target"}
		}
		if _, seen := m.bySource[e.Source]; !seen {
			m.order = append(m.order, e.Source)
		}
		m.bySource[e.Source] = append(m.bySource[e.Source], e)
	}
	return m, nil
}

// Node returns the node with the given id.
func (m *Model) Node(id string) (flow.NodeSpec, bool) {
	i, ok := m.byID[id]
	if !ok {
		return flow.NodeSpec{}, false
	}
	return m.Nodes[i], true
}

// EdgesFrom returns the outgoing edges of a node in document order.
func (m *Model) EdgesFrom(id string) []flow.EdgeSpec {
	return m.bySource[id]
}

// Sources returns the ids of all nodes with outgoing edges, in the
// order their first edge appears in the document.
func (m *Model) Sources() []string {
	return m.order
}
