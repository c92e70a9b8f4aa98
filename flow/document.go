// Package flow provides loading and structural validation of Langflow
// flow documents. It supports both JSON and YAML exports; YAML input is
// normalized to JSON before decoding.
package flow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the parsed flow export: the declarative node/edge graph a
// conversion starts from. It is read-only for the duration of one
// conversion.
type Document struct {
	Nodes []NodeSpec `json:"nodes"`
	Edges []EdgeSpec `json:"edges"`
}

// NodeSpec is a single node in the flow document.
type NodeSpec struct {
	ID        string         `json:"id"`
	ClassPath string         `json:"class_path,omitempty"`
	Data      NodeData       `json:"data,omitempty"`
	Inputs    map[string]any `json:"inputs,omitempty"`
}

// NodeData carries display metadata attached by the flow editor.
type NodeData struct {
	Label string `json:"label,omitempty"`
}

// EdgeSpec is a directed edge between two nodes, optionally guarded by a
// textual boolean condition over the shared state.
type EdgeSpec struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Data   EdgeData `json:"data,omitempty"`
}

// EdgeData carries the optional guard condition for an edge.
type EdgeData struct {
	Condition string `json:"condition,omitempty"`
}

// Label returns the display label for the node, falling back to a
// generated name when the export carries none.
func (n NodeSpec) Label() string {
	if n.Data.Label != "" {
		return n.Data.Label
	}
	return "Node_" + n.ID
}

// Code returns the embedded custom Python body for the node, if any.
// Langflow stores it under the "code" input key.
func (n NodeSpec) Code() (string, bool) {
	raw, ok := n.Inputs["code"]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Guard returns the edge's guard expression, if present.
func (e EdgeSpec) Guard() (string, bool) {
	if strings.TrimSpace(e.Data.Condition) == "" {
		return "", false
	}
	return e.Data.Condition, true
}

// Load reads and structurally validates a flow document. It returns a
// *FormatError when the content is not well-formed JSON/YAML and a
// *SchemaError when the required top-level "nodes" field is absent.
// Edge endpoint integrity is deferred to graph.Build.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path from caller
	if err != nil {
		return nil, fmt.Errorf("reading flow document %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes raw document bytes. The path is used only to decide
// whether YAML normalization applies.
func Parse(data []byte, path string) (*Document, error) {
	jsonData := data
	if isYAML(path) {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &FormatError{Path: path, Err: err}
		}
		jsonData = converted
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	if _, ok := raw["nodes"]; !ok {
		return nil, &SchemaError{Path: path, Field: "nodes"}
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	if doc.Edges == nil {
		doc.Edges = []EdgeSpec{}
	}
	return &doc, nil
}

// isYAML returns true if the file path has a YAML extension.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// yamlToJSON converts raw bytes from YAML format to JSON bytes.
// yaml.v3 decodes into map[string]any, which is JSON-compatible.
func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return json.Marshal(raw)
}
