package parser

import (
	"github.com/gnoswap-labs/mzstk/ast"
	"github.com/gnoswap-labs/mzstk/lexer"
)

// state is the open-block stack of a single Parse call. blocks[0] is the
// root; expected[i] is the closer awaited by blocks[i+1].
type state struct {
	blocks   []*ast.Node
	expected []lexer.Kind
	maxDepth int
}

func newState(root *ast.Node, maxDepth int) *state {
	return &state{
		blocks:   []*ast.Node{root},
		maxDepth: maxDepth,
	}
}

func (s *state) top() *ast.Node {
	return s.blocks[len(s.blocks)-1]
}

// pending returns the number of open blocks.
func (s *state) pending() int {
	return len(s.expected)
}

// open pushes a detached container for the block opened by tok.
func (s *state) open(tok lexer.Token) error {
	if len(s.blocks) >= s.maxDepth {
		return ErrStackOverflow
	}
	node, ok := ast.FromToken(tok)
	closer, isBlock := tok.Kind.Closer()
	if !ok || !isBlock {
		return ErrUnexpectedToken
	}
	s.blocks = append(s.blocks, node)
	s.expected = append(s.expected, closer)
	return nil
}

// close pops the innermost block and attaches it to its parent.
func (s *state) close(kind lexer.Kind) error {
	if len(s.expected) == 0 {
		return ErrUnexpectedEnd
	}
	if s.expected[len(s.expected)-1] != kind {
		return ErrMismatchedEnd
	}
	s.expected = s.expected[:len(s.expected)-1]

	block := s.top()
	s.blocks[len(s.blocks)-1] = nil
	s.blocks = s.blocks[:len(s.blocks)-1]
	s.top().Append(block)
	return nil
}
