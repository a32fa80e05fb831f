package internal

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/mzstk"
	"github.com/gnoswap-labs/mzstk/ast"
	"github.com/gnoswap-labs/mzstk/formatter"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
	"github.com/gnoswap-labs/mzstk/parser"
	"github.com/gnoswap-labs/mzstk/scanner"
)

// Engine translates source files with a fixed configuration and reports
// translation failures as diagnostics.
type Engine struct {
	extension string
	maxDepth  int
	ignored   *scanner.Scanner
	logger    *zap.Logger
}

// NewEngine creates an engine for files with extension whose block nesting
// is bounded by maxDepth. Zero values select the defaults.
func NewEngine(extension string, maxDepth int, logger *zap.Logger) (*Engine, error) {
	if extension == "" {
		extension = mzstk.DefaultExtension
	}
	if maxDepth == 0 {
		maxDepth = parser.DefaultMaxDepth
	}
	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: max depth must be at least 1, got %d", parser.ErrInvalidOption, maxDepth)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		extension: extension,
		maxDepth:  maxDepth,
		ignored:   scanner.New(""),
		logger:    logger,
	}, nil
}

// Extension returns the extension of the files the engine accepts.
func (e *Engine) Extension() string { return e.extension }

// MaxDepth returns the open-block stack bound passed to the parser.
func (e *Engine) MaxDepth() int { return e.maxDepth }

func (e *Engine) IgnorePath(path string) {
	e.ignored.Ignore(path)
}

func (e *Engine) IsIgnored(path string) bool {
	return e.ignored.IsIgnored(path)
}

// Parse reads and translates the file at path.
// The source is returned alongside translation errors so they can be rendered.
func (e *Engine) Parse(path string) (*ast.Node, *mzstk.SourceCode, error) {
	src, err := mzstk.ReadSource(path, e.extension)
	if err != nil {
		return nil, nil, err
	}
	tree, err := mzstk.Translate(src.Text, parser.WithMaxDepth(e.maxDepth))
	if err != nil {
		return nil, src, err
	}
	return tree, src, nil
}

// Run translates the file and returns its diagnostics. Failing to read the
// file is returned as an error.
func (e *Engine) Run(path string) ([]tt.Diagnostic, error) {
	if e.IsIgnored(path) {
		return nil, nil
	}
	src, err := mzstk.ReadSource(path, e.extension)
	if err != nil {
		return nil, err
	}
	return e.check(src), nil
}

// RunSource translates source as if it was read from name.
func (e *Engine) RunSource(name string, source []byte) ([]tt.Diagnostic, error) {
	return e.check(mzstk.NewSourceCode(name, string(source))), nil
}

func (e *Engine) check(src *mzstk.SourceCode) []tt.Diagnostic {
	tree, err := mzstk.Translate(src.Text, parser.WithMaxDepth(e.maxDepth))
	if err != nil {
		e.logger.Debug("translation failed", zap.String("file", src.Path), zap.Error(err))
		return []tt.Diagnostic{formatter.FromError(src.Path, src, err)}
	}
	e.logger.Debug("translated",
		zap.String("file", src.Path),
		zap.Int("nodes", ast.Count(tree)),
		zap.Int("depth", ast.Depth(tree)),
	)
	return nil
}
