package emit

import (
	"fmt"
	"unicode"

	"github.com/petal-labs/flowport/graph"
)

// pythonKeywords are reserved words a generated function name must not
// collide with.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// CleanLabel turns a node label into a valid Python identifier:
// non-alphanumerics become underscores, the result is lowercased, a
// leading digit gets an f_ prefix, and keywords get a trailing
// underscore.
func CleanLabel(label string) string {
	out := make([]rune, 0, len(label))
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, unicode.ToLower(r))
		} else {
			out = append(out, '_')
		}
	}
	clean := string(out)
	if clean == "" {
		clean = "node"
	}
	if unicode.IsDigit(rune(clean[0])) {
		clean = "f_" + clean
	}
	if pythonKeywords[clean] {
		clean += "_"
	}
	return clean
}

// nodeNames maps every node id to a unique cleaned function name,
// assigning names in document order so collisions resolve the same way
// every run.
func nodeNames(m *graph.Model) map[string]string {
	names := make(map[string]string, len(m.Nodes))
	used := make(map[string]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		name := CleanLabel(n.Label())
		if used[name] {
			for i := 2; ; i++ {
				candidate := fmt.Sprintf("%s_%d", name, i)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		names[n.ID] = name
	}
	return names
}
