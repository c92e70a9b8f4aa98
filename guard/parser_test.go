package guard

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, input string) Expr {
	t.Helper()
	expr, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return expr
}

func TestParse_Equality(t *testing.T) {
	expr := mustParse(t, "status == 'ready'")
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != TokenEq {
		t.Fatalf("expr = %#v, want BinaryExpr ==", expr)
	}
	field, ok := bin.Left.(*FieldExpr)
	if !ok || field.Name != "status" {
		t.Errorf("left = %#v, want field status", bin.Left)
	}
	lit, ok := bin.Right.(*LiteralExpr)
	if !ok || lit.Value != "ready" {
		t.Errorf("right = %#v, want literal 'ready'", bin.Right)
	}
}

func TestParse_DoubleQuotes(t *testing.T) {
	expr := mustParse(t, `intent == "greeting"`)
	bin := expr.(*BinaryExpr)
	lit := bin.Right.(*LiteralExpr)
	if lit.Value != "greeting" {
		t.Errorf("literal = %v, want greeting", lit.Value)
	}
}

func TestParse_Precedence(t *testing.T) {
	// and binds tighter than or: a or (b and c)
	expr := mustParse(t, "a == '1' or b == '2' and c == '3'")
	top, ok := expr.(*BinaryExpr)
	if !ok || top.Op != TokenOr {
		t.Fatalf("top = %#v, want or", expr)
	}
	right, ok := top.Right.(*BinaryExpr)
	if !ok || right.Op != TokenAnd {
		t.Fatalf("right of or = %#v, want and", top.Right)
	}
}

func TestParse_ParensOverridePrecedence(t *testing.T) {
	expr := mustParse(t, "(a == '1' or b == '2') and c == '3'")
	top, ok := expr.(*BinaryExpr)
	if !ok || top.Op != TokenAnd {
		t.Fatalf("top = %#v, want and", expr)
	}
	left, ok := top.Left.(*BinaryExpr)
	if !ok || left.Op != TokenOr {
		t.Fatalf("left of and = %#v, want or", top.Left)
	}
}

func TestParse_Not(t *testing.T) {
	expr := mustParse(t, "not done")
	not, ok := expr.(*NotExpr)
	if !ok {
		t.Fatalf("expr = %#v, want NotExpr", expr)
	}
	if f, ok := not.Operand.(*FieldExpr); !ok || f.Name != "done" {
		t.Errorf("operand = %#v, want field done", not.Operand)
	}
}

func TestParse_Membership(t *testing.T) {
	expr := mustParse(t, "'error' in message")
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != TokenIn {
		t.Fatalf("expr = %#v, want in", expr)
	}
}

func TestParse_MembershipList(t *testing.T) {
	expr := mustParse(t, "intent in ['greeting', 'farewell']")
	bin := expr.(*BinaryExpr)
	list, ok := bin.Right.(*ListExpr)
	if !ok || len(list.Elements) != 2 {
		t.Fatalf("right = %#v, want 2-element list", bin.Right)
	}
}

func TestParse_Len(t *testing.T) {
	expr := mustParse(t, "len(documents) > 0")
	bin := expr.(*BinaryExpr)
	call, ok := bin.Left.(*CallExpr)
	if !ok || call.Func != "len" || call.Field != "documents" || call.Method {
		t.Fatalf("left = %#v, want len(documents)", bin.Left)
	}
	lit := bin.Right.(*LiteralExpr)
	if lit.Value != int64(0) {
		t.Errorf("right = %#v, want 0", lit.Value)
	}
}

func TestParse_MethodCall(t *testing.T) {
	expr := mustParse(t, "message.startswith('hi')")
	call, ok := expr.(*CallExpr)
	if !ok || !call.Method || call.Field != "message" || call.Func != "startswith" {
		t.Fatalf("expr = %#v, want message.startswith(...)", expr)
	}
	if len(call.Args) != 1 {
		t.Fatalf("args = %d, want 1", len(call.Args))
	}
}

func TestParse_Booleans(t *testing.T) {
	expr := mustParse(t, "flag == True")
	bin := expr.(*BinaryExpr)
	lit := bin.Right.(*LiteralExpr)
	if lit.Value != true {
		t.Errorf("literal = %v, want true", lit.Value)
	}
}

func TestParse_Numbers(t *testing.T) {
	expr := mustParse(t, "score >= 0.75")
	bin := expr.(*BinaryExpr)
	if bin.Op != TokenGte {
		t.Fatalf("op = %v, want >=", bin.Op)
	}
	lit := bin.Right.(*LiteralExpr)
	if lit.Value != 0.75 {
		t.Errorf("literal = %v, want 0.75", lit.Value)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{
		"status ==",
		"== 'x'",
		"(a == '1'",
		"unknownfn(x)",
		"a == '1' extra",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestPython_Rewriting(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"status == 'ready'", "state.get('status') == 'ready'"},
		{"'error' in message", "'error' in state.get('message', '')"},
		{"len(documents) > 0", "len(state.get('documents', [])) > 0"},
		{"message.startswith('hi')", "state.get('message', '').startswith('hi')"},
		{"not done", "not state.get('done')"},
		{"flag == True", "state.get('flag') == True"},
		{
			"a == '1' or b == '2' and c == '3'",
			"state.get('a') == '1' or (state.get('b') == '2' and state.get('c') == '3')",
		},
		{
			"intent in ['greeting', 'farewell']",
			"state.get('intent') in ['greeting', 'farewell']",
		},
	}
	for _, tt := range tests {
		expr := mustParse(t, tt.input)
		if got := Python(expr); got != tt.want {
			t.Errorf("Python(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPython_EscapesQuotes(t *testing.T) {
	expr := mustParse(t, `reply == "it's"`)
	got := Python(expr)
	want := `state.get('reply') == 'it\'s'`
	if got != want {
		t.Errorf("Python() = %q, want %q", got, want)
	}
}

func TestFields_FirstAppearanceOrder(t *testing.T) {
	expr := mustParse(t, "b == '1' and a == '2' or b == '3' and len(c) > 0")
	got := Fields(expr)
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}
