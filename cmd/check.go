package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/mzstk"
	"github.com/gnoswap-labs/mzstk/check"
	"github.com/gnoswap-labs/mzstk/formatter"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
)

var (
	ignorePaths     string
	checkJSONOutput bool
	outPath         string
	watchMode       bool
	quiet           bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Validate source files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: Please provide file or directory paths")
			os.Exit(1)
		}

		engine, _, err := check.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		for _, path := range splitList(ignorePaths) {
			engine.IgnorePath(path)
		}

		if watchMode {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if err := engine.Watch(ctx, args, reportChange(cmd.OutOrStdout())); err != nil {
				logger.Fatal("Error watching paths", zap.Error(err))
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var progress io.Writer
		if !quiet && !checkJSONOutput {
			progress = cmd.ErrOrStderr()
		}
		if code := runCheck(ctx, cmd.OutOrStdout(), progress, engine, args, checkJSONOutput, outPath); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output diagnostics in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-check files whenever they change")
	checkCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not draw a progress bar")
}

func splitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func runCheck(
	ctx context.Context,
	w, progress io.Writer,
	engine check.Engine,
	paths []string,
	isJSON bool,
	jsonOutput string,
) int {
	var opts []check.Option
	if progress != nil {
		opts = append(opts, check.WithProgress(progress))
	}

	diags, err := check.ProcessFiles(ctx, logger, engine, paths, check.ProcessFile, opts...)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return 1
	}

	if err := printDiagnostics(w, diags, isJSON, jsonOutput); err != nil {
		logger.Error("Error printing diagnostics", zap.Error(err))
		return 1
	}

	if len(diags) > 0 {
		return 1
	}
	return 0
}

func printDiagnostics(w io.Writer, diags []tt.Diagnostic, isJSON bool, jsonOutput string) error {
	diagsByFile := make(map[string][]tt.Diagnostic)
	for _, d := range diags {
		diagsByFile[d.Filename] = append(diagsByFile[d.Filename], d)
	}

	if isJSON {
		d, err := json.Marshal(diagsByFile)
		if err != nil {
			return fmt.Errorf("error marshalling diagnostics to JSON: %w", err)
		}
		if jsonOutput == "" {
			_, err = fmt.Fprintln(w, string(d))
			return err
		}
		return os.WriteFile(jsonOutput, d, 0o644)
	}

	sortedFiles := make([]string, 0, len(diagsByFile))
	for filename := range diagsByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		var src *mzstk.SourceCode
		if content, err := os.ReadFile(filename); err == nil {
			src = mzstk.NewSourceCode(filename, string(content))
		} else {
			logger.Warn("Error reading source file", zap.String("file", filename), zap.Error(err))
		}
		fmt.Fprint(w, formatter.GenerateFormattedDiagnostic(diagsByFile[filename], src))
	}
	return nil
}

func reportChange(w io.Writer) func(string, []tt.Diagnostic, error) {
	return func(path string, diags []tt.Diagnostic, err error) {
		if err != nil {
			logger.Error("Error checking file", zap.String("file", path), zap.Error(err))
			return
		}
		if len(diags) == 0 {
			logger.Info("ok", zap.String("file", path))
			return
		}
		if err := printDiagnostics(w, diags, false, ""); err != nil {
			logger.Error("Error printing diagnostics", zap.String("file", path), zap.Error(err))
		}
	}
}
