package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrLex is matched by every error returned from the lexer.
var ErrLex = errors.New("lex error")

// Error describes the first invalid character sequence found in the source.
type Error struct {
	Pos  int  // byte offset of the offending character
	Char byte // offending character, 0 at end of input
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at position %d: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return ErrLex }

// Lexer produces tokens from mzstk source one at a time.
// A Lexer is not safe for concurrent use.
type Lexer struct {
	src string
	pos int
}

// New creates a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Lex performs lexical analysis on the input string
// and returns a sequence of tokens terminated by an EOF token.
func Lex(src string) ([]Token, error) {
	l := New(src)
	tokens := make([]Token, 0, len(src)/2+1)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning an EOF token positioned at the end of the source.
func (l *Lexer) Next() (Token, error) {
	l.skipIgnored()

	if l.pos >= len(l.src) {
		return Token{Kind: KindEOF, Pos: len(l.src)}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	if isDigit(c) {
		return l.scanNumber(), nil
	}

	l.pos++
	tok := Token{Pos: start}

	switch c {
	case '+':
		tok.Kind = KindAdd
	case '-':
		tok.Kind = KindSubtract
	case '*':
		tok.Kind = KindMultiply
	case '/':
		tok.Kind = KindDivide
	case '%':
		tok.Kind = KindModulo

	case '&', '|':
		kind := KindAnd
		if c == '|' {
			kind = KindOr
		}
		if err := l.expect(c, c); err != nil {
			return Token{}, err
		}
		tok.Kind = kind

	case '=':
		if err := l.expect(c, '='); err != nil {
			return Token{}, err
		}
		tok.Kind = KindEqual

	case '!':
		tok.Kind = KindNot
		if l.peek() == '=' {
			l.pos++
			tok.Kind = KindNotEqual
		}

	case '<':
		tok.Kind = KindLess
		if l.peek() == '=' {
			l.pos++
			tok.Kind = KindLessEqual
		}
	case '>':
		tok.Kind = KindGreater
		if l.peek() == '=' {
			l.pos++
			tok.Kind = KindGreaterEqual
		}

	case '[':
		tok.Kind = KindStartIf
	case ']':
		tok.Kind = KindEndIf
	case '{':
		tok.Kind = KindStartWhile
	case '}':
		tok.Kind = KindEndWhile
	case '(':
		tok.Kind = KindStartFor
	case ')':
		tok.Kind = KindEndFor
	case '@':
		tok.Kind = KindStartFunction
	case '$':
		tok.Kind = KindEndFunction

	case ':', ';':
		tok.Kind = KindStore
		if c == ';' {
			tok.Kind = KindLoad
		}
		if l.pos >= len(l.src) || !isAlpha(l.src[l.pos]) {
			return Token{}, &Error{Pos: start, Char: c, Msg: fmt.Sprintf("invalid variable name after '%c'", c)}
		}
		tok.Value = int(l.src[l.pos])
		l.pos++

	case 'S':
		tok.Kind = KindStart
	case 'E':
		tok.Kind = KindExit

	default:
		return Token{}, &Error{Pos: start, Char: c, Msg: unknownToken(c)}
	}

	return tok, nil
}

// expect consumes want right after the operator c, which has already been read.
func (l *Lexer) expect(c, want byte) error {
	start := l.pos - 1
	if l.pos >= len(l.src) {
		return &Error{Pos: start, Char: c, Msg: fmt.Sprintf("unexpected end of input after '%c'", c)}
	}
	if l.src[l.pos] != want {
		return &Error{Pos: start, Char: c, Msg: fmt.Sprintf("invalid token: '%c' must be followed by '%c'", c, want)}
	}
	l.pos++
	return nil
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	value := 0
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		value = value*10 + int(l.src[l.pos]-'0')
		l.pos++
	}
	return Token{Kind: KindPush, Value: value, Pos: start}
}

// skipIgnored skips whitespace and '#' line comments.
func (l *Lexer) skipIgnored() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isWhitespace(c):
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func unknownToken(c byte) string {
	if c >= utf8.RuneSelf {
		return fmt.Sprintf("unknown byte 0x%02X", c)
	}
	return fmt.Sprintf("unknown token '%c' (ASCII %d)", c, c)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
