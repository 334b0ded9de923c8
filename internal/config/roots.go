package config

// RootConfig holds per-root configuration for a single scanned directory.
// This allows customizing scan behavior per tree from one shared file.
type RootConfig struct {
	// Output overrides the artifact path for this root.
	// If empty, the default outputs/docs.md under the root is used.
	Output string `yaml:"output,omitempty"`

	// ExtraIgnoreDirs are directory names pruned in addition to the
	// built-in ignore set.
	ExtraIgnoreDirs []string `yaml:"extraIgnoreDirs,omitempty"`

	// UseGitignore enables honoring a .gitignore file at this root.
	// A nil pointer means "not set here"; the CLI flag or the defaults
	// section decides.
	UseGitignore *bool `yaml:"useGitignore,omitempty"`

	// Languages restricts dependency extraction to the named families
	// (e.g. "python", "javascript"). Empty means every covered family.
	// Classification and file inventories still span all families.
	Languages []string `yaml:"languages,omitempty"`
}

// File represents the structure of the .codegenius configuration file.
type File struct {
	// Roots maps scanned directory paths to their per-root configurations.
	// Keys are the paths as the user passes them on the command line.
	Roots map[string]RootConfig `yaml:"roots,omitempty"`

	// Defaults contains default root configuration applied to all roots
	// unless overridden in the root-specific configuration.
	Defaults RootConfig `yaml:"defaults,omitempty"`
}

// GetRootConfig returns the configuration for a specific root path.
// It merges the root-specific configuration with defaults.
func (cf *File) GetRootConfig(root string) RootConfig {
	result := cf.Defaults

	if rootConfig, ok := cf.Roots[root]; ok {
		if rootConfig.Output != "" {
			result.Output = rootConfig.Output
		}
		if len(rootConfig.ExtraIgnoreDirs) > 0 {
			result.ExtraIgnoreDirs = rootConfig.ExtraIgnoreDirs
		}
		if rootConfig.UseGitignore != nil {
			result.UseGitignore = rootConfig.UseGitignore
		}
		if len(rootConfig.Languages) > 0 {
			result.Languages = rootConfig.Languages
		}
	}

	return result
}
