package formatter

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/mzstk"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestGenerateFormattedDiagnostic(t *testing.T) {
	t.Parallel()
	src := mzstk.NewSourceCode("test.mzstk", "S\n\t1 }\nE")

	diags := []tt.Diagnostic{
		{
			Category: tt.CategoryStructural,
			Filename: "test.mzstk",
			Message:  "parse error at token 2: unexpected end block",
			Index:    2,
			Start:    token.Position{Line: 2, Column: 4},
			End:      token.Position{Line: 2, Column: 4},
		},
		{
			Category: tt.CategoryStructural,
			Filename: "test.mzstk",
			Message:  "parse error: unclosed block(s) at end of program",
			Note:     "close it",
			Index:    -1,
		},
	}

	expected := `error: structural-error
 --> test.mzstk:2:4
  |
2 |         1 }
  |           ^
  = parse error at token 2: unexpected end block

error: structural-error
 --> test.mzstk
  = parse error: unclosed block(s) at end of program
  = note: close it

`
	assert.Equal(t, expected, GenerateFormattedDiagnostic(diags, src))
}

func TestFormatWithoutSource(t *testing.T) {
	t.Parallel()
	d := tt.Diagnostic{
		Category: tt.CategoryLex,
		Filename: "x.mzstk",
		Message:  "boom",
		Start:    token.Position{Line: 3, Column: 1},
	}
	expected := "error: lex-error\n --> x.mzstk\n  = boom\n\n"
	assert.Equal(t, expected, GenerateFormattedDiagnostic([]tt.Diagnostic{d}, nil))
}

func TestFromError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		category string
		line     int
		column   int
		index    int
		hasNote  bool
	}{
		{name: "lex error", input: "S\n  & E", category: tt.CategoryLex, line: 2, column: 3, index: -1},
		{name: "unknown character", input: "S x E", category: tt.CategoryLex, line: 1, column: 3, index: -1},
		{name: "unexpected end", input: "S\n}\nE", category: tt.CategoryStructural, line: 2, column: 1, index: 1},
		{name: "mismatched end", input: "S [ ) E", category: tt.CategoryStructural, line: 1, column: 5, index: 2, hasNote: true},
		{name: "unclosed block", input: "S [ E", category: tt.CategoryStructural, index: -1, hasNote: true},
		{name: "missing start", input: "1 E", category: tt.CategoryStructural, line: 1, column: 1, index: 0, hasNote: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := mzstk.NewSourceCode("t.mzstk", tc.input)
			_, err := mzstk.Translate(tc.input)
			require.Error(t, err)

			d := FromError("t.mzstk", src, err)
			assert.Equal(t, tc.category, d.Category)
			assert.Equal(t, tc.line, d.Start.Line)
			assert.Equal(t, tc.column, d.Start.Column)
			assert.Equal(t, tc.index, d.Index)
			assert.Equal(t, err.Error(), d.Message)
			assert.Equal(t, tc.hasNote, d.Note != "")
		})
	}
}

func TestFromErrorIO(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("error reading x.mzstk: %w", errors.New("permission denied"))
	d := FromError("x.mzstk", nil, err)
	assert.Equal(t, tt.CategoryIO, d.Category)
	assert.False(t, d.HasPosition())
}

func TestFormattedTranslationError(t *testing.T) {
	t.Parallel()
	input := "S 1 2 + ] E"
	src := mzstk.NewSourceCode("prog.mzstk", input)
	_, err := mzstk.Translate(input)
	require.Error(t, err)

	out := GenerateFormattedDiagnostic([]tt.Diagnostic{FromError(src.Path, src, err)}, src)
	expected := `error: structural-error
 --> prog.mzstk:1:9
  |
1 | S 1 2 + ] E
  |         ^
  = parse error at token 4: unexpected end block

`
	assert.Equal(t, expected, out)
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, calculateVisualColumn("abc", 1))
	assert.Equal(t, 2, calculateVisualColumn("abc", 3))
	assert.Equal(t, 8, calculateVisualColumn("\tx", 2))
	assert.Equal(t, 0, calculateVisualColumn("abc", 0))
	assert.Equal(t, "        x", expandTabs("\tx"))
}
