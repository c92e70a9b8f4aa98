package guard

import (
	"fmt"
	"strings"
)

// Python renders the predicate as a Python expression over the shared
// state dict. Field references become state.get calls; containers that
// feed membership tests or len() get an empty default so the emitted
// predicate never raises on a missing field.
func Python(e Expr) string {
	return render(e, false)
}

func render(e Expr, containerCtx bool) string {
	switch v := e.(type) {
	case *FieldExpr:
		if containerCtx {
			return fmt.Sprintf("state.get('%s', '')", v.Name)
		}
		return fmt.Sprintf("state.get('%s')", v.Name)

	case *LiteralExpr:
		return renderLiteral(v)

	case *ListExpr:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = render(el, false)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case *CallExpr:
		if v.Method {
			args := make([]string, len(v.Args))
			for i, a := range v.Args {
				args[i] = render(a, false)
			}
			return fmt.Sprintf("state.get('%s', '').%s(%s)", v.Field, v.Func, strings.Join(args, ", "))
		}
		return fmt.Sprintf("len(state.get('%s', []))", v.Field)

	case *NotExpr:
		return "not " + renderOperand(v.Operand)

	case *BinaryExpr:
		switch v.Op {
		case TokenAnd:
			return renderOperand(v.Left) + " and " + renderOperand(v.Right)
		case TokenOr:
			return renderOperand(v.Left) + " or " + renderOperand(v.Right)
		case TokenIn:
			// Containment flips the default: the right side must be a
			// container even when the field is absent.
			return render(v.Left, false) + " in " + render(v.Right, true)
		default:
			return render(v.Left, false) + " " + v.Op.String() + " " + render(v.Right, false)
		}

	default:
		return ""
	}
}

// renderOperand parenthesizes nested connectives so the emitted Python
// preserves the parsed structure regardless of Python's own precedence.
func renderOperand(e Expr) string {
	if b, ok := e.(*BinaryExpr); ok && (b.Op == TokenAnd || b.Op == TokenOr) {
		return "(" + render(e, false) + ")"
	}
	return render(e, false)
}

// renderLiteral formats a literal the way the emitted script quotes
// values: single quotes for strings, Python spelling for booleans.
func renderLiteral(l *LiteralExpr) string {
	switch v := l.Value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "\\'") + "'"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if l.Raw != "" {
			return l.Raw
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Fields returns the state field names referenced anywhere in the
// predicate, in first-appearance order.
func Fields(e Expr) []string {
	var out []string
	seen := make(map[string]bool)
	walk(e, func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	})
	return out
}

func walk(e Expr, visit func(string)) {
	switch v := e.(type) {
	case *FieldExpr:
		visit(v.Name)
	case *CallExpr:
		visit(v.Field)
		for _, a := range v.Args {
			walk(a, visit)
		}
	case *NotExpr:
		walk(v.Operand, visit)
	case *BinaryExpr:
		walk(v.Left, visit)
		walk(v.Right, visit)
	case *ListExpr:
		for _, el := range v.Elements {
			walk(el, visit)
		}
	}
}
