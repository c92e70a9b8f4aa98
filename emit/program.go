// Package emit renders the resolved flow into a LangGraph Python
// script. Output is deterministic: the same model, schema, and plans
// always produce byte-identical source.
package emit

import "fmt"

// Program is the emitted script plus the structural facts the
// validator checks without re-parsing the text.
type Program struct {
	Source string

	// Registered holds the function names passed to graph.add_node, in
	// emission order (router functions included).
	Registered []string

	// EdgeRefs holds every node name referenced by an edge, entry, or
	// finish line.
	EdgeRefs []string

	// Entry and Finish are the node names wired to START and END.
	Entry  string
	Finish string
}

// GenerationError reports a model the emitter cannot render.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating graph code: %s", e.Reason)
}

// Options tunes emission. NormalizeBodies re-indents embedded custom
// code relative to its shallowest line; the repair pass enables it.
type Options struct {
	NormalizeBodies bool
}
