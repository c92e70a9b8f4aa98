package state

import (
	"regexp"
	"strings"

	"github.com/petal-labs/flowport/classify"
	"github.com/petal-labs/flowport/flow"
	"github.com/petal-labs/flowport/graph"
)

var (
	assignDouble = regexp.MustCompile(`state\["([^"]+)"\]\s*=\s*(.+?)(?:\n|$)`)
	assignSingle = regexp.MustCompile(`state\['([^']+)'\]\s*=\s*(.+?)(?:\n|$)`)
	accessDouble = regexp.MustCompile(`if\s+"([^"]+)"\s+in\s+state`)
	accessSingle = regexp.MustCompile(`if\s+'([^']+)'\s+in\s+state`)
	returnDouble = regexp.MustCompile(`return\s+\{\s*"([^"]+)"\s*:\s*(.+?)(?:\}|,)`)
	returnSingle = regexp.MustCompile(`return\s+\{\s*'([^']+)'\s*:\s*(.+?)(?:\}|,)`)

	guardEquality = regexp.MustCompile(`(\w+)\s*==\s*['"]([^'"]*)['"]`)

	listShape  = regexp.MustCompile(`\[\]|list\(\)|\[.+\]`)
	dictShape  = regexp.MustCompile(`\{\}|dict\(\)|\{.+\}`)
	boolShape  = regexp.MustCompile(`True|False`)
	intShape   = regexp.MustCompile(`^\d+$`)
	floatShape = regexp.MustCompile(`^\d+\.\d+$`)
)

// Infer builds the state schema for one conversion. Per node, in
// document order: custom-code assignments, returned routing maps,
// membership tests (typed from surrounding usage), then the default
// fields of the node's category. Edge-guard equality operands come
// last. First writer wins throughout.
func Infer(m *graph.Model, categories map[string]classify.Category) *Schema {
	s := NewSchema()

	for _, n := range m.Nodes {
		if code, ok := n.Code(); ok {
			inferFromCode(s, code)
		}
		cat, ok := categories[n.ID]
		if !ok {
			cat = classify.Classify(n.ClassPath)
		}
		for _, f := range categoryFields[cat] {
			s.Set(f.name, f.pyType)
		}
	}

	for _, e := range m.Edges {
		guard, ok := e.Guard()
		if !ok {
			continue
		}
		for _, match := range guardEquality.FindAllStringSubmatch(guard, -1) {
			s.Set(match[1], literalType(match[2]))
		}
	}

	return s
}

// inferFromCode scans one node's embedded Python body.
func inferFromCode(s *Schema, code string) {
	for _, re := range []*regexp.Regexp{assignDouble, assignSingle} {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			s.Set(m[1], valueType(m[2]))
		}
	}
	for _, re := range []*regexp.Regexp{returnDouble, returnSingle} {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			s.Set(m[1], valueType(m[2]))
		}
	}
	for _, re := range []*regexp.Regexp{accessDouble, accessSingle} {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			s.Set(m[1], usageType(m[1], code))
		}
	}
}

// valueType types a field from the textual shape of the value assigned
// or returned into it.
func valueType(value string) string {
	trimmed := strings.TrimSpace(value)
	switch {
	case listShape.MatchString(value):
		return TypeList
	case dictShape.MatchString(value):
		return TypeDict
	case boolShape.MatchString(value):
		return TypeBool
	case intShape.MatchString(trimmed):
		return TypeInt
	case floatShape.MatchString(trimmed):
		return TypeFloat
	default:
		return TypeStr
	}
}

// usageType guesses a type for a field only seen in membership tests by
// how the rest of the body uses it.
func usageType(field, code string) string {
	switch {
	case strings.Contains(code, field+".append") || strings.Contains(code, field+".extend"):
		return TypeList
	case strings.Contains(code, field+".get(") || strings.Contains(code, field+"['") || strings.Contains(code, field+`["`):
		return TypeDict
	case strings.Contains(code, field+" is True") || strings.Contains(code, field+" is False") || strings.Contains(code, "not "+field):
		return TypeBool
	case strings.Contains(code, field+" + ") || strings.Contains(code, field+" - ") ||
		strings.Contains(code, field+" * ") || strings.Contains(code, field+" / "):
		return TypeFloat
	case strings.Contains(code, field+" += ") || strings.Contains(code, field+" -= ") || strings.Contains(code, "len("+field+")"):
		return TypeInt
	default:
		return TypeStr
	}
}

// literalType types a guard comparison operand from its literal text.
func literalType(value string) string {
	lower := strings.ToLower(value)
	switch {
	case lower == "true" || lower == "false":
		return TypeBool
	case intShape.MatchString(value):
		return TypeInt
	case floatShape.MatchString(value):
		return TypeFloat
	default:
		return TypeStr
	}
}

// InferFromGuard records the equality operands of a single guard
// expression. Used when edges arrive without a full model.
func InferFromGuard(s *Schema, e flow.EdgeSpec) {
	guard, ok := e.Guard()
	if !ok {
		return
	}
	for _, match := range guardEquality.FindAllStringSubmatch(guard, -1) {
		s.Set(match[1], literalType(match[2]))
	}
}
