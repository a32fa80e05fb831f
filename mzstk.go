// Package mzstk translates mzstk programs into syntax trees.
//
// Translation runs in two passes. The lexer turns the source into tokens
// terminated by an EOF token, and the parser builds a PROGRAM rooted tree
// using an open-block stack:
//
//	tree, err := mzstk.Translate("S 1 2 + E")
//	if err != nil {
//	    // *lexer.Error or *parser.Error
//	}
//	fmt.Print(ast.Dump(tree))
package mzstk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnoswap-labs/mzstk/ast"
	"github.com/gnoswap-labs/mzstk/lexer"
	"github.com/gnoswap-labs/mzstk/parser"
)

// DefaultExtension is the extension required for source files.
const DefaultExtension = ".mzstk"

// ErrExtension is returned by ReadSource for files with the wrong extension.
var ErrExtension = errors.New("invalid file extension")

// Translate lexes src and builds its syntax tree.
func Translate(src string, opts ...parser.Option) (*ast.Node, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return parser.Build(tokens, opts...)
}

// SourceCode stores the content of a source file.
type SourceCode struct {
	Path  string
	Text  string
	Lines []string
}

// NewSourceCode wraps text read from path.
func NewSourceCode(path, text string) *SourceCode {
	return &SourceCode{
		Path:  path,
		Text:  text,
		Lines: strings.Split(text, "\n"),
	}
}

// ReadSource checks that path ends with ext and reads it.
// An empty ext means DefaultExtension.
func ReadSource(path, ext string) (*SourceCode, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if filepath.Ext(path) != ext {
		return nil, fmt.Errorf("%w: input file must have %s extension", ErrExtension, ext)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return NewSourceCode(path, string(content)), nil
}

// Position converts a byte offset into a 1-based line and column.
// Offsets past the end are clamped to the end of the source.
func (s *SourceCode) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	line = 1 + strings.Count(s.Text[:offset], "\n")
	lineStart := strings.LastIndexByte(s.Text[:offset], '\n') + 1
	return line, offset - lineStart + 1
}
