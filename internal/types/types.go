package types

import "go/token"

// Categories of diagnostics reported for a source file.
const (
	CategoryLex        = "lex-error"
	CategoryStructural = "structural-error"
	CategoryIO         = "io-error"
	CategoryOption     = "option-error"
)

// Diagnostic represents a translation failure found in a source file.
// Start.Line is zero when the failure is not tied to a source location.
type Diagnostic struct {
	Category string
	Filename string
	Message  string
	Note     string
	Index    int // token index for structural errors, -1 otherwise
	Start    token.Position
	End      token.Position
}

// HasPosition reports whether the diagnostic points into the source.
func (d Diagnostic) HasPosition() bool {
	return d.Start.Line > 0
}
