package guard

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a guard condition string into an AST.
func Parse(input string) (Expr, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != TokenEOF {
		return nil, fmt.Errorf("unexpected token %s at position %d", p.current().Kind, p.current().Pos)
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, fmt.Errorf("expected %s but got %s at position %d", kind, tok.Kind, tok.Pos)
	}
	p.advance()
	return tok, nil
}

// Precedence levels (low to high):
// 1. or
// 2. and
// 3. ==, !=, <, >, <=, >=, in
// 4. not (unary)
// 5. primary (field, literal, list, call, parens)

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: TokenOr, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: TokenAnd, Right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	switch p.current().Kind {
	case TokenEq, TokenNeq, TokenGt, TokenGte, TokenLt, TokenLte, TokenIn:
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op.Kind, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.current().Kind == TokenNot {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.current()

	switch tok.Kind {
	case TokenNumber:
		p.advance()
		if strings.Contains(tok.Value, ".") {
			val, err := strconv.ParseFloat(tok.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", tok.Value, tok.Pos)
			}
			return &LiteralExpr{Value: val, Raw: tok.Value}, nil
		}
		val, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at position %d", tok.Value, tok.Pos)
		}
		return &LiteralExpr{Value: val, Raw: tok.Value}, nil

	case TokenString:
		p.advance()
		return &LiteralExpr{Value: tok.Value, Raw: tok.Value}, nil

	case TokenTrue:
		p.advance()
		return &LiteralExpr{Value: true, Raw: "True"}, nil

	case TokenFalse:
		p.advance()
		return &LiteralExpr{Value: false, Raw: "False"}, nil

	case TokenIdent:
		p.advance()
		return p.parsePostfix(tok)

	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case TokenLBracket:
		return p.parseListLiteral()

	default:
		return nil, fmt.Errorf("unexpected token %s at position %d", tok.Kind, tok.Pos)
	}
}

// parsePostfix handles what follows an identifier: a bare field
// reference, len(field), or field.method(args).
func (p *parser) parsePostfix(ident Token) (Expr, error) {
	switch p.current().Kind {
	case TokenLParen:
		// Only len() is recognized as a free function.
		if ident.Value != "len" {
			return nil, fmt.Errorf("unknown function %q at position %d", ident.Value, ident.Pos)
		}
		p.advance()
		field, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &CallExpr{Func: "len", Field: field.Value}, nil

	case TokenDot:
		p.advance()
		method, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		call := &CallExpr{Func: method.Value, Field: ident.Value, Method: true}
		if p.current().Kind != TokenRParen {
			for {
				arg, err := p.parsePrimary()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if p.current().Kind != TokenComma {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return call, nil

	default:
		return &FieldExpr{Name: ident.Value}, nil
	}
}

func (p *parser) parseListLiteral() (Expr, error) {
	p.advance() // skip [
	var elements []Expr

	if p.current().Kind == TokenRBracket {
		p.advance()
		return &ListExpr{Elements: elements}, nil
	}

	for {
		elem, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)

		if p.current().Kind != TokenComma {
			break
		}
		p.advance() // skip comma
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}

	return &ListExpr{Elements: elements}, nil
}
