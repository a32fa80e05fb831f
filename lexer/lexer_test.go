package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "empty input",
			input: "",
			expected: []Token{
				{Kind: KindEOF, Pos: 0},
			},
		},
		{
			name:  "push and add",
			input: "S1 2+E",
			expected: []Token{
				{Kind: KindStart, Pos: 0},
				{Kind: KindPush, Value: 1, Pos: 1},
				{Kind: KindPush, Value: 2, Pos: 3},
				{Kind: KindAdd, Pos: 4},
				{Kind: KindExit, Pos: 5},
				{Kind: KindEOF, Pos: 6},
			},
		},
		{
			name:  "multi digit literal",
			input: "12345",
			expected: []Token{
				{Kind: KindPush, Value: 12345, Pos: 0},
				{Kind: KindEOF, Pos: 5},
			},
		},
		{
			name:  "store and load",
			input: "S:a;aE",
			expected: []Token{
				{Kind: KindStart, Pos: 0},
				{Kind: KindStore, Value: 'a', Pos: 1},
				{Kind: KindLoad, Value: 'a', Pos: 3},
				{Kind: KindExit, Pos: 5},
				{Kind: KindEOF, Pos: 6},
			},
		},
		{
			name:  "arithmetic",
			input: "+-*/%",
			expected: []Token{
				{Kind: KindAdd, Pos: 0},
				{Kind: KindSubtract, Pos: 1},
				{Kind: KindMultiply, Pos: 2},
				{Kind: KindDivide, Pos: 3},
				{Kind: KindModulo, Pos: 4},
				{Kind: KindEOF, Pos: 5},
			},
		},
		{
			name:  "comparisons",
			input: "== != < > <= >=",
			expected: []Token{
				{Kind: KindEqual, Pos: 0},
				{Kind: KindNotEqual, Pos: 3},
				{Kind: KindLess, Pos: 6},
				{Kind: KindGreater, Pos: 8},
				{Kind: KindLessEqual, Pos: 10},
				{Kind: KindGreaterEqual, Pos: 13},
				{Kind: KindEOF, Pos: 15},
			},
		},
		{
			name:  "logical",
			input: "&&||!",
			expected: []Token{
				{Kind: KindAnd, Pos: 0},
				{Kind: KindOr, Pos: 2},
				{Kind: KindNot, Pos: 4},
				{Kind: KindEOF, Pos: 5},
			},
		},
		{
			name:  "not followed by something else",
			input: "!1",
			expected: []Token{
				{Kind: KindNot, Pos: 0},
				{Kind: KindPush, Value: 1, Pos: 1},
				{Kind: KindEOF, Pos: 2},
			},
		},
		{
			name:  "less at end of input",
			input: "<",
			expected: []Token{
				{Kind: KindLess, Pos: 0},
				{Kind: KindEOF, Pos: 1},
			},
		},
		{
			name:  "blocks",
			input: "[]{}()@$",
			expected: []Token{
				{Kind: KindStartIf, Pos: 0},
				{Kind: KindEndIf, Pos: 1},
				{Kind: KindStartWhile, Pos: 2},
				{Kind: KindEndWhile, Pos: 3},
				{Kind: KindStartFor, Pos: 4},
				{Kind: KindEndFor, Pos: 5},
				{Kind: KindStartFunction, Pos: 6},
				{Kind: KindEndFunction, Pos: 7},
				{Kind: KindEOF, Pos: 8},
			},
		},
		{
			name:  "comment through newline",
			input: "S # push nothing + - E\n1E",
			expected: []Token{
				{Kind: KindStart, Pos: 0},
				{Kind: KindPush, Value: 1, Pos: 23},
				{Kind: KindExit, Pos: 24},
				{Kind: KindEOF, Pos: 25},
			},
		},
		{
			name:  "comment at end of input",
			input: "S E # trailing",
			expected: []Token{
				{Kind: KindStart, Pos: 0},
				{Kind: KindExit, Pos: 2},
				{Kind: KindEOF, Pos: 14},
			},
		},
		{
			name:  "whitespace is skipped",
			input: " \t\r\n\v\fS",
			expected: []Token{
				{Kind: KindStart, Pos: 6},
				{Kind: KindEOF, Pos: 7},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Lex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		pos     int
		char    byte
		message string
	}{
		{
			name:    "lone ampersand",
			input:   "S&E",
			pos:     1,
			char:    '&',
			message: "invalid token: '&' must be followed by '&'",
		},
		{
			name:    "ampersand at end",
			input:   "S&",
			pos:     1,
			char:    '&',
			message: "unexpected end of input after '&'",
		},
		{
			name:    "lone pipe",
			input:   "|1",
			pos:     0,
			char:    '|',
			message: "invalid token: '|' must be followed by '|'",
		},
		{
			name:    "lone equal",
			input:   "1=2",
			pos:     1,
			char:    '=',
			message: "invalid token: '=' must be followed by '='",
		},
		{
			name:    "equal at end",
			input:   "=",
			pos:     0,
			char:    '=',
			message: "unexpected end of input after '='",
		},
		{
			name:    "store without name",
			input:   "S:",
			pos:     1,
			char:    ':',
			message: "invalid variable name after ':'",
		},
		{
			name:    "load with digit name",
			input:   "S;1",
			pos:     1,
			char:    ';',
			message: "invalid variable name after ';'",
		},
		{
			name:    "store with space before name",
			input:   ": a",
			pos:     0,
			char:    ':',
			message: "invalid variable name after ':'",
		},
		{
			name:    "unknown character",
			input:   "S x E",
			pos:     2,
			char:    'x',
			message: "unknown token 'x' (ASCII 120)",
		},
		{
			name:    "non-ASCII byte",
			input:   "S\xc3\xa9E",
			pos:     1,
			char:    0xc3,
			message: "unknown byte 0xC3",
		},
		{
			name:    "control character",
			input:   "S\x00E",
			pos:     1,
			char:    0,
			message: "unknown token '\x00' (ASCII 0)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := Lex(tt.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, ErrLex))

			var lexErr *Error
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.pos, lexErr.Pos)
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.message, lexErr.Msg)
		})
	}
}

func TestLexDeterministic(t *testing.T) {
	t.Parallel()
	src := "S @ 10 :x ;x 1 - $ { ;x 0 > [ ;x 2 % 0 == ] } E"

	first, err := Lex(src)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Lex(src)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLexerNextAfterEOF(t *testing.T) {
	t.Parallel()
	l := New("S")

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, KindStart, tok.Kind)

	for i := 0; i < 3; i++ {
		tok, err = l.Next()
		require.NoError(t, err)
		assert.Equal(t, Token{Kind: KindEOF, Pos: 1}, tok)
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "PUSH 42", Token{Kind: KindPush, Value: 42}.String())
	assert.Equal(t, "STORE a", Token{Kind: KindStore, Value: 'a'}.String())
	assert.Equal(t, "LOAD Z", Token{Kind: KindLoad, Value: 'Z'}.String())
	assert.Equal(t, "NOT_EQUAL", Token{Kind: KindNotEqual}.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

func TestKindCloser(t *testing.T) {
	t.Parallel()
	pairs := map[Kind]Kind{
		KindStartIf:       KindEndIf,
		KindStartWhile:    KindEndWhile,
		KindStartFor:      KindEndFor,
		KindStartFunction: KindEndFunction,
	}
	for open, want := range pairs {
		got, ok := open.Closer()
		assert.True(t, ok)
		assert.Equal(t, want, got)
		assert.True(t, open.IsBlockStart())
		assert.True(t, want.IsBlockEnd())
	}

	_, ok := KindAdd.Closer()
	assert.False(t, ok)
	assert.False(t, KindAdd.IsBlockStart())
	assert.False(t, KindAdd.IsBlockEnd())
}
