package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRoot is returned when no scan root is specified.
	ErrNoRoot = errors.New("no scan root specified: provide at least one directory")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans, effectively
	// stopping the scanning process.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrOutputWithMultipleRoots is returned when --output is combined with
	// more than one scan root. Each scan produces one artifact, so a shared
	// output path would leave only the last scan's document.
	ErrOutputWithMultipleRoots = errors.New("conflicting options: --output cannot be used with multiple roots")
)
