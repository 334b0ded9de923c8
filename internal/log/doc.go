// Package log provides path-aware logging built on top of the standard
// slog package.
//
// Scans emit many filesystem paths: the walked root, every skipped subtree,
// the artifact location, the history database directory. Raw absolute paths
// make log lines long and leak the user's home directory layout into logs
// that may be shared in bug reports. The PathHandler wrapper shortens them:
//   - Paths under the user's home directory are rewritten with a "~" prefix
//   - Very long paths are elided in the middle, keeping head and tail
//
// # Usage
//
//	// Create a path-aware logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("artifact written",
//	    "path", "/home/alice/src/demo/outputs/docs.md", // logs as ~/src/demo/outputs/docs.md
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
//
// The wrapper works with any underlying handler (text, JSON) and leaves
// non-path attributes untouched.
package log
