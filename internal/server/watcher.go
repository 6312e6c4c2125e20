package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// defaultIgnore lists file and directory names the watcher always skips.
var defaultIgnore = []string{
	".git",
	"node_modules",
	"loom.db",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls a set of paths for modified-time changes and reports
// each batch through a callback. Polling sidesteps platform
// notification quirks; the interval is coarse enough to stay cheap on
// a project-sized tree.
type Watcher struct {
	paths    []string
	ignore   []string
	interval time.Duration
	mtimes   map[string]time.Time
	logger   *slog.Logger
}

// NewWatcher creates a watcher over paths. Extra ignore patterns extend
// the built-in set; each pattern matches a path segment, either exactly
// or as a glob.
func NewWatcher(paths, ignore []string) *Watcher {
	return &Watcher{
		paths:    paths,
		ignore:   append(append([]string{}, defaultIgnore...), ignore...),
		interval: 200 * time.Millisecond,
		mtimes:   make(map[string]time.Time),
		logger:   slog.Default().With("component", "watcher"),
	}
}

// Run polls until ctx is cancelled, invoking onChange with the files
// that changed since the previous poll. The first scan only seeds the
// baseline and reports nothing.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) {
	w.scan(nil)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var changed []string
			w.scan(func(path string) { changed = append(changed, path) })
			if len(changed) > 0 {
				sort.Strings(changed)
				w.logger.Debug("files changed", "count", len(changed), "first", changed[0])
				onChange(changed)
			}
		}
	}
}

// scan walks every watch path, updating the mtime baseline. report, if
// non-nil, is called once per new or modified file; deletions are
// reported as well so removing a file still refreshes the page.
func (w *Watcher) scan(report func(path string)) {
	seen := make(map[string]bool, len(w.mtimes))

	for _, root := range w.paths {
		filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if w.ignored(path) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}

			seen[path] = true
			prev, known := w.mtimes[path]
			mod := info.ModTime()
			if !known || mod.After(prev) {
				w.mtimes[path] = mod
				if report != nil {
					report(path)
				}
			}
			return nil
		})
	}

	for path := range w.mtimes {
		if !seen[path] {
			delete(w.mtimes, path)
			if report != nil {
				report(path)
			}
		}
	}
}

// ignored reports whether any segment of path matches an ignore
// pattern.
func (w *Watcher) ignored(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == "" {
			continue
		}
		for _, pattern := range w.ignore {
			if segment == pattern {
				return true
			}
			if ok, _ := filepath.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}

// cssOnly reports whether every changed file is a stylesheet, in which
// case the page can refresh styles without losing state.
func cssOnly(changed []string) bool {
	if len(changed) == 0 {
		return false
	}
	for _, path := range changed {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".css", ".scss", ".sass", ".less":
		default:
			return false
		}
	}
	return true
}
