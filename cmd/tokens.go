package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/mzstk"
	"github.com/gnoswap-labs/mzstk/check"
	"github.com/gnoswap-labs/mzstk/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := check.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		if code := runTokens(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], config.Extension); code != 0 {
			os.Exit(code)
		}
	},
}

func runTokens(stdout, stderr io.Writer, path, ext string) int {
	src, err := mzstk.ReadSource(path, ext)
	if err != nil {
		printError(stderr, path, nil, err)
		return 1
	}

	tokens, err := lexer.Lex(src.Text)
	if err != nil {
		printError(stderr, path, src, err)
		return 1
	}

	w := bufio.NewWriter(stdout)
	for _, tok := range tokens {
		fmt.Fprintln(w, tok)
	}
	if err := w.Flush(); err != nil {
		logger.Error("Error printing tokens", zap.Error(err))
		return 1
	}
	return 0
}
