// Package guard parses the Python-style boolean conditions attached to
// flow edges and compiles each guarded fan-out into a routing plan the
// emitter can render. Guards are translated, never evaluated.
package guard

import "fmt"

// Expr is the interface implemented by all guard AST nodes.
type Expr interface {
	expr() // marker method
	String() string
}

// BinaryExpr represents a binary operation (comparison, membership, or
// a logical connective).
type BinaryExpr struct {
	Left  Expr
	Op    TokenKind
	Right Expr
}

func (e *BinaryExpr) expr() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// NotExpr represents logical negation.
type NotExpr struct {
	Operand Expr
}

func (e *NotExpr) expr() {}
func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.Operand)
}

// LiteralExpr represents a literal value: string, number, or boolean.
type LiteralExpr struct {
	Value any // float64, int64, string, or bool
	Raw   string
}

func (e *LiteralExpr) expr() {}
func (e *LiteralExpr) String() string {
	return fmt.Sprintf("%v", e.Value)
}

// FieldExpr references a state field by name.
type FieldExpr struct {
	Name string
}

func (e *FieldExpr) expr() {}
func (e *FieldExpr) String() string {
	return e.Name
}

// CallExpr is either len(field) or a field method call like
// field.startswith('x').
type CallExpr struct {
	Func   string // "len" or the method name
	Field  string
	Method bool // true for field.method(args), false for len(field)
	Args   []Expr
}

func (e *CallExpr) expr() {}
func (e *CallExpr) String() string {
	if e.Method {
		return fmt.Sprintf("%s.%s(...)", e.Field, e.Func)
	}
	return fmt.Sprintf("%s(%s)", e.Func, e.Field)
}

// ListExpr represents an inline list literal (e.g. ['a', 'b']).
type ListExpr struct {
	Elements []Expr
}

func (e *ListExpr) expr() {}
func (e *ListExpr) String() string {
	return fmt.Sprintf("[%d elements]", len(e.Elements))
}
