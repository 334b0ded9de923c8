package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 4 concurrent scans balances throughput with disk
	// contention. Scanning is I/O bound on the tree walk, so more workers
	// than a handful mostly fight each other for the page cache.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "codegenius"

	// DefaultArtifactDir is the directory under the scan root where the
	// rendered document lands by default.
	DefaultArtifactDir = "outputs"

	// DefaultArtifactName is the default artifact file name.
	DefaultArtifactName = "docs.md"
)

// DefaultArtifactRelPath returns the artifact location relative to the
// scan root.
func DefaultArtifactRelPath() string {
	return filepath.Join(DefaultArtifactDir, DefaultArtifactName)
}

// Config holds all configuration options for codegenius.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., WalkConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Roots is the list of directories to scan.
	// Must contain at least one entry; the CLI defaults it to ".".
	Roots []string

	// OutputPath overrides the artifact location for a single-root scan.
	// Empty means outputs/docs.md under the scan root. Setting it together
	// with multiple roots is rejected, since every scan would overwrite
	// the same file.
	OutputPath string

	// JSONOutcome switches the per-scan summary printed to stdout from
	// human-readable lines to a JSON object.
	JSONOutcome bool

	// BatchSize is the number of concurrent scans when processing
	// multiple roots.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .codegenius in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds per-root settings loaded from the config file.
	// Populated by LoadConfigFile; nil when no file was found.
	FileConfig *File

	// SaveHistory indicates whether to record a summary row in the scan
	// history database after each successful scan.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory for the application.
	HistoryDir string

	// UseGitignore enables honoring a .gitignore file at each scan root.
	UseGitignore bool

	// ExtraIgnoreDirs is appended to the built-in directory prune set.
	ExtraIgnoreDirs []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (batch size, history
// persistence). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:   DefaultBatchSize,
		SaveHistory: true,
		HistoryDir:  XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for codegenius.
// On Linux: ~/.local/share/codegenius
// On macOS: ~/Library/Application Support/codegenius
// On Windows: %LOCALAPPDATA%\codegenius
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for codegenius.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return ErrNoRoot
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// One output file cannot hold several scans' artifacts.
	if c.OutputPath != "" && len(c.Roots) > 1 {
		return ErrOutputWithMultipleRoots
	}

	return nil
}
