package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/codegenius/codegenius/internal/config"
	"github.com/codegenius/codegenius/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command lists scan summaries stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past scans recorded in the history database",
		Long: `History lists the scan summaries recorded by previous 'codegenius scan' runs.

Each row shows the scan ID, when it ran, the scanned root, and the totals
for classified files, graph nodes, and graph edges. The IDs are the handles
'codegenius compare' accepts.

Examples:
  # List all recorded scans
  codegenius history

  # List scans of one root only
  codegenius history --root ~/src/myproject

  # Output the listing as JSON
  codegenius history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("root", "r", "",
		"Restrict the listing to scans of this root")
	cmd.Flags().BoolP("json", "j", false,
		"Output the listing in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := history.Open(config.XDGDataDir(), history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only listing

	records, err := db.ListScans(context.Background(), root)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	if len(records) == 0 {
		if root != "" {
			fmt.Printf("No scan history found for %s\n", root)
		} else {
			fmt.Println("No scan history found.")
		}
		fmt.Println("\nUse 'codegenius scan <directory>' to scan a source tree.")
		return nil
	}

	fmt.Printf("Scan history (%d scans):\n\n", len(records))
	fmt.Printf("  %-6s  %-20s  %-8s  %-8s  %-8s  %s\n", "ID", "Date", "Files", "Nodes", "Edges", "Root")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, rec := range records {
		fmt.Printf("  %-6d  %-20s  %-8d  %-8d  %-8d  %s\n",
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.TotalFiles,
			rec.NodeCount,
			rec.EdgeCount,
			rec.Root,
		)
	}

	fmt.Println("\nUse 'codegenius compare <directory>' to compare the latest two scans of a root.")

	return nil
}
