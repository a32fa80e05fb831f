package internal

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/mzstk"
	tt "github.com/gnoswap-labs/mzstk/internal/types"
)

// settleDelay groups bursts of write events on one file into a single check.
const settleDelay = 100 * time.Millisecond

// ReportFunc receives the result of re-checking a changed file.
type ReportFunc func(path string, diags []tt.Diagnostic, err error)

// Watch re-checks source files whenever they are written, until ctx is
// done. Directories in paths are watched recursively; a file in paths is
// watched through its parent directory, ignoring its siblings. It returns
// nil when the context ends.
func (e *Engine) Watch(ctx context.Context, paths []string, report ReportFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	targets, err := e.addWatchPaths(watcher, paths)
	if err != nil {
		return err
	}

	e.logger.Info("watching for changes", zap.Strings("paths", paths))

	pending := make(map[string]*time.Timer)
	changed := make(chan string)
	defer func() {
		for _, timer := range pending {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !e.isWatchedEvent(event) || !targets.contains(event.Name) {
				continue
			}
			if timer, ok := pending[event.Name]; ok {
				// a fired timer is still delivering name
				if timer.Stop() {
					timer.Reset(settleDelay)
				}
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(settleDelay, func() {
				select {
				case changed <- name:
				case <-ctx.Done():
				}
			})
		case name := <-changed:
			delete(pending, name)
			diags, err := e.Run(name)
			report(name, diags, err)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watcher error", zap.Error(err))
		}
	}
}

// watchTargets selects the files a watch reports on.
type watchTargets struct {
	dirs  map[string]bool // every file directly inside is a target
	files map[string]bool
}

func (w watchTargets) contains(name string) bool {
	name = filepath.Clean(name)
	return w.files[name] || w.dirs[filepath.Dir(name)]
}

func (e *Engine) addWatchPaths(watcher *fsnotify.Watcher, paths []string) (watchTargets, error) {
	targets := watchTargets{dirs: make(map[string]bool), files: make(map[string]bool)}
	added := make(map[string]bool)
	add := func(dir string) error {
		if added[dir] {
			return nil
		}
		added[dir] = true
		return watcher.Add(dir)
	}

	for _, path := range paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return targets, fmt.Errorf("error accessing %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) != e.extension {
				return targets, fmt.Errorf("%w: cannot watch %s", mzstk.ErrExtension, path)
			}
			targets.files[path] = true
			if err := add(filepath.Dir(path)); err != nil {
				return targets, fmt.Errorf("error adding directory to watcher: %w", err)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if e.IsIgnored(p) {
				return filepath.SkipDir
			}
			targets.dirs[p] = true
			return add(p)
		})
		if err != nil {
			return targets, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return targets, nil
}
func (e *Engine) isWatchedEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Ext(event.Name) == e.extension && !e.IsIgnored(event.Name)
}
