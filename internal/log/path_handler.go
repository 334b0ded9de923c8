package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// maxPathLength is the length beyond which a path attribute is elided in
// the middle. Chosen so a typical log line still fits a terminal row.
const maxPathLength = 96

// pathKeys contains attribute keys whose string values are treated as
// filesystem paths and abbreviated.
var pathKeys = map[string]bool{
	"path":     true,
	"root":     true,
	"dir":      true,
	"artifact": true,
	"output":   true,
	"file":     true,
}

// PathHandler wraps an slog.Handler to abbreviate filesystem paths.
// It intercepts log records and rewrites path-valued attributes before
// passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than shortening paths
// at every call site: components keep logging full paths through a plain
// *slog.Logger, and the abbreviation applies uniformly regardless of the
// output format underneath.
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the user's home directory, empty when unknown.
	home string
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// Path-valued attributes are abbreviated before being passed on.
// If handler is nil, the returned PathHandler uses slog.Default().Handler().
func NewPathHandler(handler slog.Handler) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &PathHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's path attributes and passes it on.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewrittenAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewrittenAttrs[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewrittenAttrs), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewrittenAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewrittenAttrs[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewrittenAttrs...)}
	}

	if !pathKeys[strings.ToLower(a.Key)] {
		return a
	}
	if a.Value.Kind() != slog.KindString {
		return a
	}

	return slog.String(a.Key, h.Abbreviate(a.Value.String()))
}

// Abbreviate shortens one path: home-prefix replacement first, then a
// middle elision when the result is still too long.
func (h *PathHandler) Abbreviate(path string) string {
	if h.home != "" {
		if path == h.home {
			path = "~"
		} else if rest, ok := strings.CutPrefix(path, h.home+string(os.PathSeparator)); ok {
			path = "~" + string(os.PathSeparator) + rest
		}
	}

	if len(path) <= maxPathLength {
		return path
	}

	// Keep the head and the tail; the middle segments carry the least
	// information for locating a file.
	keep := (maxPathLength - 3) / 2
	return path[:keep] + "..." + path[len(path)-keep:]
}

// NewLogger creates a new slog.Logger with path abbreviation over a text
// handler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewPathHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with path abbreviation that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewPathHandler(jsonHandler))
}
