package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/mzstk"
	"github.com/gnoswap-labs/mzstk/ast"
	"github.com/gnoswap-labs/mzstk/check"
	"github.com/gnoswap-labs/mzstk/formatter"
	"github.com/gnoswap-labs/mzstk/internal"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := check.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		if code := runParse(cmd.OutOrStdout(), cmd.ErrOrStderr(), engine, args[0], parseJSON); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the tree as JSON")
}

// runParse prints the tree of path on stdout, or a diagnostic on stderr.
// It returns the process exit code.
func runParse(stdout, stderr io.Writer, engine *internal.Engine, path string, asJSON bool) int {
	tree, src, err := engine.Parse(path)
	if err != nil {
		printError(stderr, path, src, err)
		return 1
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			logger.Error("Error marshalling tree to JSON", zap.Error(err))
			return 1
		}
		return 0
	}

	if err := ast.Fprint(stdout, tree); err != nil {
		logger.Error("Error printing tree", zap.Error(err))
		return 1
	}
	return 0
}

func printError(w io.Writer, path string, src *mzstk.SourceCode, err error) {
	d := formatter.FromError(path, src, err)
	fmt.Fprint(w, formatter.GenerateFormattedDiagnostic([]tt.Diagnostic{d}, src))
}
