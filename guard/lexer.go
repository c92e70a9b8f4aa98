package guard

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the type of a lexer token.
type TokenKind int

const (
	// Literals and identifiers
	TokenIdent  TokenKind = iota // identifier
	TokenNumber                  // numeric literal
	TokenString                  // string literal

	// Operators
	TokenEq  // ==
	TokenNeq // !=
	TokenGt  // >
	TokenGte // >=
	TokenLt  // <
	TokenLte // <=
	TokenAnd // and
	TokenOr  // or
	TokenNot // not
	TokenIn  // in

	// Delimiters
	TokenDot      // .
	TokenLBracket // [
	TokenRBracket // ]
	TokenLParen   // (
	TokenRParen   // )
	TokenComma    // ,

	// Special
	TokenTrue  // True
	TokenFalse // False
	TokenEOF
)

var tokenNames = map[TokenKind]string{
	TokenIdent:    "identifier",
	TokenNumber:   "number",
	TokenString:   "string",
	TokenEq:       "==",
	TokenNeq:      "!=",
	TokenGt:       ">",
	TokenGte:      ">=",
	TokenLt:       "<",
	TokenLte:      "<=",
	TokenAnd:      "and",
	TokenOr:       "or",
	TokenNot:      "not",
	TokenIn:       "in",
	TokenDot:      ".",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenComma:    ",",
	TokenTrue:     "True",
	TokenFalse:    "False",
	TokenEOF:      "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Token is a lexed token with position information.
type Token struct {
	Kind  TokenKind
	Value string // raw text of the token
	Pos   int    // byte offset in source
}

// keywords maps keyword strings to their token kinds. Guards use
// Python's spelling for connectives and booleans.
var keywords = map[string]TokenKind{
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
	"in":    TokenIn,
	"True":  TokenTrue,
	"False": TokenFalse,
	"true":  TokenTrue,
	"false": TokenFalse,
}

// Lexer tokenizes guard condition strings.
type Lexer struct {
	src    string
	pos    int
	tokens []Token
}

// Lex tokenizes the input string and returns all tokens.
func Lex(src string) ([]Token, error) {
	l := &Lexer{src: src}
	if err := l.lexAll(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) lexAll() error {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			l.tokens = append(l.tokens, Token{Kind: TokenEOF, Pos: l.pos})
			return nil
		}

		ch, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		if l.tryEmitDoubleCharToken(ch) || l.tryEmitSingleCharToken(ch) {
			continue
		}

		switch {
		case ch == '"' || ch == '\'':
			if err := l.lexString(byte(ch)); err != nil {
				return err
			}
		case isDigit(ch) || (ch == '-' && l.isNegativeNumber()):
			l.lexNumber()
		case isIdentStart(ch):
			l.lexIdent()
		default:
			return fmt.Errorf("unexpected character %q at position %d", string(ch), l.pos)
		}
	}
}

func (l *Lexer) tryEmitDoubleCharToken(ch rune) bool {
	switch {
	case ch == '=' && l.peekNext() == '=':
		l.emit2(TokenEq)
	case ch == '!' && l.peekNext() == '=':
		l.emit2(TokenNeq)
	case ch == '>' && l.peekNext() == '=':
		l.emit2(TokenGte)
	case ch == '<' && l.peekNext() == '=':
		l.emit2(TokenLte)
	default:
		return false
	}
	return true
}

func (l *Lexer) tryEmitSingleCharToken(ch rune) bool {
	switch ch {
	case '>':
		l.emit1(TokenGt)
	case '<':
		l.emit1(TokenLt)
	case '.':
		l.emit1(TokenDot)
	case '[':
		l.emit1(TokenLBracket)
	case ']':
		l.emit1(TokenRBracket)
	case '(':
		l.emit1(TokenLParen)
	case ')':
		l.emit1(TokenRParen)
	case ',':
		l.emit1(TokenComma)
	default:
		return false
	}
	return true
}

func (l *Lexer) peekNext() byte {
	next := l.pos + 1
	if next >= len(l.src) {
		return 0
	}
	return l.src[next]
}

func (l *Lexer) emit1(kind TokenKind) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: l.src[l.pos : l.pos+1], Pos: l.pos})
	l.pos++
}

func (l *Lexer) emit2(kind TokenKind) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: l.src[l.pos : l.pos+2], Pos: l.pos})
	l.pos += 2
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(ch) {
			break
		}
		l.pos += size
	}
}

// lexString reads a string delimited by the given quote byte. Guards
// use single and double quotes interchangeably.
func (l *Lexer) lexString(quote byte) error {
	start := l.pos
	l.pos++ // skip opening quote
	var sb strings.Builder

	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return fmt.Errorf("unterminated string at position %d", start)
			}
			esc := l.src[l.pos]
			switch esc {
			case quote, '\\':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			l.pos++
			continue
		}
		if ch == quote {
			l.pos++ // skip closing quote
			l.tokens = append(l.tokens, Token{
				Kind:  TokenString,
				Value: sb.String(),
				Pos:   start,
			})
			return nil
		}
		sb.WriteByte(ch)
		l.pos++
	}

	return fmt.Errorf("unterminated string at position %d", start)
}

func (l *Lexer) lexNumber() {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	// decimal part
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
			l.pos++
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenNumber, Value: l.src[start:l.pos], Pos: start})
}

func (l *Lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(ch) {
			break
		}
		l.pos += size
	}
	word := l.src[start:l.pos]
	kind := TokenIdent
	if kw, ok := keywords[word]; ok {
		kind = kw
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Value: word, Pos: start})
}

// isNegativeNumber checks if a '-' at current position starts a negative
// number rather than a subtraction. Guards have no arithmetic, so any
// '-' after an operator, delimiter, or at the start is a sign.
func (l *Lexer) isNegativeNumber() bool {
	if len(l.tokens) == 0 {
		return true
	}
	last := l.tokens[len(l.tokens)-1].Kind
	switch last {
	case TokenEq, TokenNeq, TokenGt, TokenGte, TokenLt, TokenLte,
		TokenAnd, TokenOr, TokenNot, TokenIn,
		TokenLParen, TokenLBracket, TokenComma:
		return true
	}
	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
