package walker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	ignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnoreDirs is the fixed set of directory names pruned during the
// walk. It covers version control metadata, editor state, virtualenvs and
// dependency caches, and common build output directories.
var defaultIgnoreDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	".idea":         {},
	".vscode":       {},
	".venv":         {},
	"venv":          {},
	"__pycache__":   {},
	"node_modules":  {},
	"dist":          {},
	"build":         {},
	".pytest_cache": {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".tox":          {},
	".cache":        {},
	"target":        {},
	"out":           {},
	"bin":           {},
}

// WalkFunc is called once per discovered regular file.
// Returning an error aborts the walk and is propagated to the caller.
type WalkFunc func(absPath, relPath string) error

// Walker enumerates files under one root directory.
// A Walker is single-use per scan in spirit: the sequence it produces is
// finite and not restartable mid-way, so callers needing a second pass
// should just walk again.
type Walker struct {
	// root is the absolute, validated scan root.
	root string

	// ignoreDirs is the effective directory prune set.
	ignoreDirs map[string]struct{}

	// matcher holds compiled .gitignore rules when enabled; nil otherwise.
	matcher *ignore.GitIgnore

	// logger for structured logging of skipped subtrees.
	logger *slog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithExtraIgnoreDirs adds directory names to the default prune set.
func WithExtraIgnoreDirs(dirs []string) Option {
	return func(w *Walker) {
		for _, d := range dirs {
			if d != "" {
				w.ignoreDirs[d] = struct{}{}
			}
		}
	}
}

// WithGitignore enables honoring a .gitignore file at the root.
// A missing or unreadable .gitignore is not an error; the walker simply
// proceeds without it.
func WithGitignore(use bool) Option {
	return func(w *Walker) {
		if !use {
			return
		}
		matcher, err := ignore.CompileIgnoreFile(filepath.Join(w.root, ".gitignore"))
		if err != nil {
			return
		}
		w.matcher = matcher
	}
}

// WithLogger sets a custom logger for the walker.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker rooted at root.
// It fails when the root does not exist, is unreadable, or is not a
// directory; the caller decides whether that is fatal for the scan.
func New(root string, opts ...Option) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %q is not a directory", root)
	}

	w := &Walker{
		root:       abs,
		ignoreDirs: make(map[string]struct{}, len(defaultIgnoreDirs)),
	}
	for d := range defaultIgnoreDirs {
		w.ignoreDirs[d] = struct{}{}
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}

	return w, nil
}

// Root returns the absolute resolved scan root.
func (w *Walker) Root() string {
	return w.root
}

// skipDir reports whether a directory name should be pruned.
func (w *Walker) skipDir(name string) bool {
	if _, ok := w.ignoreDirs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".")
}

// Walk visits every regular file reachable from the root in lexical order,
// calling fn with absolute and root-relative (slash-separated) paths.
//
// Design decision: We use godirwalk rather than filepath.WalkDir for its
// sorted, allocation-light traversal; sorted order is what makes repeated
// scans of the same tree produce identical artifacts.
func (w *Walker) Walk(fn WalkFunc) error {
	return godirwalk.Walk(w.root, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if osPathname == w.root {
				return nil
			}

			rel, err := filepath.Rel(w.root, osPathname)
			if err != nil {
				// Should not happen for paths produced by the walk itself.
				return nil
			}
			rel = filepath.ToSlash(rel)

			if de.IsDir() {
				if w.skipDir(de.Name()) {
					return filepath.SkipDir
				}
				if w.matcher != nil && w.matcher.MatchesPath(rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}

			if !de.IsRegular() {
				return nil
			}
			if w.matcher != nil && w.matcher.MatchesPath(rel) {
				return nil
			}

			return fn(osPathname, rel)
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			// Unreadable subtrees are skipped, not fatal; only a bad root
			// fails the scan, and New catches that before walking.
			w.logger.Warn("skipping unreadable path",
				"path", osPathname,
				"error", err,
			)
			return godirwalk.SkipNode
		},
		Unsorted: false,
	})
}
