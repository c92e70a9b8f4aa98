package pycheck

import (
	"fmt"
	"strings"
)

// checkSyntax runs a lightweight Python block-structure check over the
// source: delimiters must balance outside string literals, a line
// ending a block header with ':' must be followed by a deeper indent,
// and every dedent must land on an enclosing indentation level. It is
// not a Python parser; it catches the indentation and bracket damage
// malformed embedded code introduces.
func checkSyntax(source string) error {
	lines := strings.Split(source, "\n")

	depth := 0          // open ( [ { outside strings
	indents := []int{0} // indentation stack
	expectIndent := false
	headerLine := 0

	for lineno, raw := range lines {
		code := stripStringsAndComments(raw)
		trimmed := strings.TrimSpace(code)

		if trimmed == "" {
			continue
		}
		// Continuation lines inside brackets are free-form.
		if depth > 0 {
			depth += delimiterDelta(code)
			if depth < 0 {
				return fmt.Errorf("line %d: unbalanced closing delimiter", lineno+1)
			}
			continue
		}

		indent := indentOf(raw)
		if expectIndent {
			if indent <= indents[len(indents)-1] {
				return fmt.Errorf("line %d: expected an indented block after line %d", lineno+1, headerLine+1)
			}
			indents = append(indents, indent)
			expectIndent = false
		} else if indent > indents[len(indents)-1] {
			return fmt.Errorf("line %d: unexpected indent", lineno+1)
		} else {
			for indent < indents[len(indents)-1] {
				indents = indents[:len(indents)-1]
			}
			if indent != indents[len(indents)-1] {
				return fmt.Errorf("line %d: dedent does not match any outer indentation level", lineno+1)
			}
		}

		depth += delimiterDelta(code)
		if depth < 0 {
			return fmt.Errorf("line %d: unbalanced closing delimiter", lineno+1)
		}
		if depth == 0 && strings.HasSuffix(trimmed, ":") {
			expectIndent = true
			headerLine = lineno
		}
	}

	if depth != 0 {
		return fmt.Errorf("unbalanced delimiters at end of file")
	}
	if expectIndent {
		return fmt.Errorf("expected an indented block after line %d", headerLine+1)
	}
	return nil
}

func indentOf(line string) int {
	count := 0
	for _, r := range line {
		switch r {
		case ' ':
			count++
		case '\t':
			count += 8
		default:
			return count
		}
	}
	return count
}

func delimiterDelta(code string) int {
	delta := 0
	for _, r := range code {
		switch r {
		case '(', '[', '{':
			delta++
		case ')', ']', '}':
			delta--
		}
	}
	return delta
}

// stripStringsAndComments blanks out string literal contents and
// trailing comments so delimiter counting only sees code. Triple quotes
// on one line collapse; an unterminated quote swallows the rest of the
// line, which matches how the emitter writes docstrings (always on a
// single line).
func stripStringsAndComments(line string) string {
	var out strings.Builder
	i := 0
	for i < len(line) {
		ch := line[i]
		switch ch {
		case '#':
			return out.String()
		case '\'', '"':
			quote := ch
			// Triple quote?
			if i+2 < len(line) && line[i+1] == quote && line[i+2] == quote {
				end := strings.Index(line[i+3:], strings.Repeat(string(quote), 3))
				if end < 0 {
					return out.String()
				}
				i += 3 + end + 3
				continue
			}
			j := i + 1
			for j < len(line) {
				if line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == quote {
					break
				}
				j++
			}
			if j >= len(line) {
				return out.String()
			}
			i = j + 1
		default:
			out.WriteByte(ch)
			i++
		}
	}
	return out.String()
}
