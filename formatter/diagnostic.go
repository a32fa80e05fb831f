package formatter

import (
	"errors"
	"go/token"

	"github.com/gnoswap-labs/mzstk"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
	"github.com/gnoswap-labs/mzstk/lexer"
	"github.com/gnoswap-labs/mzstk/parser"
)

var notes = map[error]string{
	parser.ErrMissingStart:  "programs begin with the start marker 'S'",
	parser.ErrMissingExit:   "add the exit marker 'E'",
	parser.ErrMismatchedEnd: "blocks close in the reverse order they were opened",
	parser.ErrUnclosedBlock: "every '[', '{', '(' and '@' needs its ']', '}', ')' or '$'",
	parser.ErrStackOverflow: "reduce the block nesting or raise max_depth",
}

// FromError converts a translation error into a diagnostic for filename.
// Positions are resolved against src when it is not nil.
func FromError(filename string, src *mzstk.SourceCode, err error) tt.Diagnostic {
	d := tt.Diagnostic{
		Category: tt.CategoryIO,
		Filename: filename,
		Message:  err.Error(),
		Index:    -1,
	}

	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
	)
	switch {
	case errors.As(err, &lexErr):
		d.Category = tt.CategoryLex
		d.Start = position(filename, src, lexErr.Pos)
		d.End = d.Start
	case errors.As(err, &parseErr):
		d.Category = tt.CategoryStructural
		if errors.Is(err, parser.ErrInvalidOption) {
			d.Category = tt.CategoryOption
		}
		d.Index = parseErr.Index
		d.Note = notes[parseErr.Err]
		if parseErr.Index >= 0 && parseErr.Pos >= 0 {
			d.Start = position(filename, src, parseErr.Pos)
			d.End = d.Start
			if parseErr.Token.Kind == lexer.KindEOF {
				d.Note = "reached the end of input"
			}
		}
	}
	return d
}

func position(filename string, src *mzstk.SourceCode, offset int) token.Position {
	if src == nil {
		return token.Position{Filename: filename, Offset: offset}
	}
	line, column := src.Position(offset)
	return token.Position{Filename: filename, Offset: offset, Line: line, Column: column}
}
