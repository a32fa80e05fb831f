package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/mzstk/formatter"
	"github.com/gnoswap-labs/mzstk/internal"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
	"github.com/gnoswap-labs/mzstk/scanner"
)

// Engine checks source files and reports their diagnostics.
type Engine interface {
	Run(filePath string) ([]tt.Diagnostic, error)
	RunSource(name string, source []byte) ([]tt.Diagnostic, error)
	IgnorePath(path string)
	IsIgnored(path string) bool
	Extension() string
}

// Processor checks a single file with engine.
type Processor func(Engine, string) ([]tt.Diagnostic, error)

// New creates an engine configured from the file at configurationPath.
// A missing configuration file selects DefaultConfig.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, Config, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, config, err
	}

	engine, err := internal.NewEngine(config.Extension, config.MaxDepth, logger)
	if err != nil {
		return nil, config, err
	}
	for _, path := range config.IgnorePaths {
		engine.IgnorePath(path)
	}
	return engine, config, nil
}

type options struct {
	progress io.Writer
	workers  int
}

type Option func(*options)

// WithProgress draws a progress bar on w while directories are processed.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// WithWorkers bounds the number of files checked concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// ProcessSources checks in-memory sources in name order.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	sources map[string][]byte,
) ([]tt.Diagnostic, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var allDiags []tt.Diagnostic
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diags, err := engine.RunSource(name, sources[name])
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.String("source", name), zap.Error(err))
			}
			return nil, err
		}
		allDiags = append(allDiags, diags...)
	}
	return allDiags, nil
}

// ProcessFiles checks every file and, recursively, every directory in paths.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor Processor,
	opts ...Option,
) ([]tt.Diagnostic, error) {
	var allDiags []tt.Diagnostic
	for _, path := range paths {
		diags, err := ProcessPath(ctx, logger, engine, path, processor, opts...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allDiags = append(allDiags, diags...)
	}

	SortDiagnostics(allDiags)
	return allDiags, nil
}

type fileResult struct {
	path  string
	diags []tt.Diagnostic
	err   error
}

// ProcessPath checks a single file, or every target file below a directory
// using a bounded pool of workers. Files that fail to be read inside a
// directory are reported as io-error diagnostics.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor Processor,
	opts ...Option,
) ([]tt.Diagnostic, error) {
	o := options{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if engine.IsIgnored(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	s := scanner.New(path, engine.Extension())
	infos, err := s.Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	var files []string
	for _, fi := range infos {
		if !engine.IsIgnored(fi.Path) {
			files = append(files, fi.Path)
		}
	}

	var bar *progressbar.ProgressBar
	if o.progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(o.progress),
			progressbar.OptionSetDescription(filepath.Base(path)),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	results := make(chan fileResult, len(files))
	sem := make(chan struct{}, o.workers)

	started := 0
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		started++
		go func(fp string) {
			defer func() { <-sem }()
			diags, err := processor(engine, fp)
			results <- fileResult{path: fp, diags: diags, err: err}
		}(filePath)
	}

	var diags []tt.Diagnostic
	for i := 0; i < started; i++ {
		var res fileResult
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res = <-results:
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if res.err != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("file", res.path), zap.Error(res.err))
			}
			diags = append(diags, formatter.FromError(res.path, nil, res.err))
			continue
		}
		diags = append(diags, res.diags...)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	SortDiagnostics(diags)
	return diags, nil
}

func ProcessFile(engine Engine, filePath string) ([]tt.Diagnostic, error) {
	return engine.Run(filePath)
}

// SortDiagnostics orders diagnostics by file name then source offset.
func SortDiagnostics(diags []tt.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Filename != diags[j].Filename {
			return diags[i].Filename < diags[j].Filename
		}
		return diags[i].Start.Offset < diags[j].Start.Offset
	})
}
