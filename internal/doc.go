// Package internal provides the engine behind the mzstk command.
//
// Engine: translates source files with a fixed extension and nesting bound,
// turning every lexical or structural failure into a types.Diagnostic.
// Paths can be ignored, either single files or whole directories.
//
// Watch: re-checks source files when they are written and hands the result
// to a ReportFunc until its context is done.
//
// Usage:
//
//	engine, err := internal.NewEngine(".mzstk", 100, logger)
//	if err != nil {
//	    // handle error
//	}
//
//	diags, err := engine.Run("path/to/prog.mzstk")
//	if err != nil {
//	    // the file could not be read
//	}
//
//	for _, d := range diags {
//	    fmt.Printf("%s: %s\n", d.Category, d.Message)
//	}
//
// This package is intended for internal use within mzstk and should not be
// imported by external packages.
package internal
