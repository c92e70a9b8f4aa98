package pycheck

import "testing"

func TestCheckSyntax_Valid(t *testing.T) {
	sources := []string{
		"x = 1\n",
		"def f(state):\n    return state\n",
		"def f(state):\n    if x:\n        y = 1\n    return state\n",
		"graph.add_conditional_edges(\n    \"a\",\n    lambda state: state.get(\"x\"),\n    {\n        \"v\": \"b\",\n    }\n)\n",
		"s = \"a : b\"\nif s:\n    pass\n",
		"# just a comment with ( unbalanced\nx = 1\n",
		"doc = \"\"\"one line docstring\"\"\"\n",
	}
	for _, src := range sources {
		if err := checkSyntax(src); err != nil {
			t.Errorf("checkSyntax(%q) = %v, want nil", src, err)
		}
	}
}

func TestCheckSyntax_Invalid(t *testing.T) {
	sources := []string{
		// Header without a following indented block.
		"def f(state):\nreturn state\n",
		// Trailing header at end of file.
		"if x:\n",
		// Dedent that matches no outer level.
		"def f(state):\n    if x:\n        y = 1\n      z = 2\n",
		// Unexpected indent.
		"x = 1\n    y = 2\n",
		// Unbalanced brackets.
		"x = (1, 2\n",
		"x = 1)\n",
	}
	for _, src := range sources {
		if err := checkSyntax(src); err == nil {
			t.Errorf("checkSyntax(%q) = nil, want error", src)
		}
	}
}

func TestCheckSyntax_StringsHideDelimiters(t *testing.T) {
	// Bracket characters inside string literals must not count.
	src := "x = \"(((\"\ny = ')'\n"
	if err := checkSyntax(src); err != nil {
		t.Errorf("checkSyntax() = %v, want nil", err)
	}
}
