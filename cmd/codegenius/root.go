// Package main provides the entry point for the codegenius CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for codegenius.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codegenius",
		Short: "Generate markdown documentation for a source tree",
		Long: `Codegenius scans a source tree, classifies files by language family, and
extracts a lexical dependency graph using regular-expression heuristics.
No compiler or parser is involved; the extraction trades precision for
universality and speed.

The scan produces a single markdown document with per-language mermaid
diagrams, file inventories, and a README summary. By default the document
lands at outputs/docs.md under the scanned root.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		NewScanCmd(),
		NewHistoryCmd(),
		NewCompareCmd(),
		NewInitCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "codegenius: %v\n", err)
		os.Exit(1)
	}
}
