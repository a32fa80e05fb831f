package parser

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/mzstk/lexer"
)

// ErrStructural is matched by every error returned from the parser.
var ErrStructural = errors.New("structural error")

var (
	ErrMissingStart    = structural("program must start with 'S'")
	ErrMissingExit     = structural("program must end with 'E'")
	ErrUnexpectedEnd   = structural("unexpected end block")
	ErrMismatchedEnd   = structural("mismatched block ending")
	ErrUnclosedBlock   = structural("unclosed block(s) at end of program")
	ErrStackOverflow   = structural("stack overflow: too many nested blocks")
	ErrUnexpectedToken = structural("unexpected token in parser")
	ErrInvalidOption   = errors.New("invalid parser option")
)

type structuralError struct{ msg string }

func structural(msg string) error { return &structuralError{msg: msg} }

func (e *structuralError) Error() string { return e.msg }

func (e *structuralError) Is(target error) bool { return target == ErrStructural }

// Error represents a parsing error with position information.
type Error struct {
	Err   error       // one of the Err* sentinels
	Index int         // index of the offending token, -1 when not tied to one
	Pos   int         // byte offset of the offending token in the source, -1 if unknown
	Token lexer.Token // offending token, zero when Index is -1
	Msg   string      // optional detail appended to the sentinel message
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Index < 0 {
		return "parse error: " + msg
	}
	return fmt.Sprintf("parse error at token %d: %s", e.Index, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errorAt(err error, index int, tok lexer.Token) *Error {
	return &Error{Err: err, Index: index, Pos: tok.Pos, Token: tok}
}

func errorAtEnd(err error) *Error {
	return &Error{Err: err, Index: -1, Pos: -1}
}
