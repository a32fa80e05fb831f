package parser

import (
	"fmt"

	"github.com/gnoswap-labs/mzstk/ast"
	"github.com/gnoswap-labs/mzstk/lexer"
)

// DefaultMaxDepth bounds the open-block stack, root included, so that
// DefaultMaxDepth-1 blocks may be nested.
const DefaultMaxDepth = 100

type Option func(*Parser)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 make Parse fail
// with ErrInvalidOption.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser consumes tokens produced by the lexer and builds the syntax tree.
type Parser struct {
	tokens   []lexer.Token
	maxDepth int
}

// New creates a Parser for tokens.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build parses tokens into a tree rooted at a PROGRAM node.
func Build(tokens []lexer.Token, opts ...Option) (*ast.Node, error) {
	return New(tokens, opts...).Parse()
}

// MaxDepth returns the configured bound of the open-block stack.
func (p *Parser) MaxDepth() int { return p.maxDepth }

// Parse processes all tokens up to EOF. The returned tree is complete;
// on error no tree is returned.
func (p *Parser) Parse() (*ast.Node, error) {
	if p.maxDepth < 1 {
		return nil, &Error{
			Err:   ErrInvalidOption,
			Index: -1,
			Pos:   -1,
			Msg:   fmt.Sprintf("max depth must be at least 1, got %d", p.maxDepth),
		}
	}
	if err := p.checkMarkers(); err != nil {
		return nil, err
	}

	root := ast.NewProgram()
	st := newState(root, p.maxDepth)

	for i, tok := range p.tokens {
		if tok.Kind == lexer.KindEOF {
			break
		}

		switch {
		case tok.Kind.IsBlockStart():
			if err := st.open(tok); err != nil {
				return nil, errorAt(err, i, tok)
			}
		case tok.Kind.IsBlockEnd():
			if err := st.close(tok.Kind); err != nil {
				return nil, errorAt(err, i, tok)
			}
		default:
			node, ok := ast.FromToken(tok)
			if !ok {
				e := errorAt(ErrUnexpectedToken, i, tok)
				e.Msg = tok.Kind.String()
				return nil, e
			}
			st.top().Append(node)
		}
	}

	if st.pending() > 0 {
		return nil, errorAtEnd(ErrUnclosedBlock)
	}
	return root, nil
}

// checkMarkers verifies the program starts with S and contains an E.
func (p *Parser) checkMarkers() error {
	if len(p.tokens) == 0 {
		return errorAtEnd(ErrMissingStart)
	}
	if p.tokens[0].Kind != lexer.KindStart {
		return errorAt(ErrMissingStart, 0, p.tokens[0])
	}
	for _, tok := range p.tokens {
		if tok.Kind == lexer.KindExit {
			return nil
		}
	}
	return errorAtEnd(ErrMissingExit)
}
