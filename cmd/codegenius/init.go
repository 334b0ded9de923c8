package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/codegenius.yaml
var configTemplate string

// configFileName is the default configuration file name.
const configFileName = ".codegenius"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new codegenius configuration file",
		Long: `Initialize creates a new .codegenius configuration file in the current directory.

The generated file includes:
- Default settings applied to every scanned root
- Commented examples for per-root configurations
- Documentation for all available options

Examples:
  # Create .codegenius in current directory
  codegenius init

  # Create config file at a specific path
  codegenius init -o myconfig.yaml

  # Force overwrite existing file
  codegenius init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd writes the embedded starter configuration to the chosen path.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigTemplate(outputPath, force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n\n", outputPath)
	fmt.Fprintln(out, "Edit this file to configure per-root settings such as:")
	fmt.Fprintln(out, "  - Artifact output paths")
	fmt.Fprintln(out, "  - Extra directories to ignore during the walk")
	fmt.Fprintln(out, "  - Whether to honor .gitignore files")

	return nil
}

// writeConfigTemplate writes the starter config, refusing to clobber an
// existing file unless force is set. Parent directories are created as
// needed so "init -o docs/gen/.codegenius" works in one shot.
func writeConfigTemplate(outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}
