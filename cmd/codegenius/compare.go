package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/codegenius/codegenius/internal/config"
	"github.com/codegenius/codegenius/internal/history"
	"github.com/spf13/cobra"
)

// Directions a metric can move between two scans.
const (
	changeDirectionGrew      = "grew"
	changeDirectionShrank    = "shrank"
	changeDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares scan summaries stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <directory>",
		Short: "Compare the latest scans of a source tree",
		Long: `Compare shows how a source tree changed between two recorded scans.

The comparison covers classified file counts per language family, graph
node and edge totals, and whether the rendered artifact's content changed.
It requires at least two recorded scans of the directory; use
'codegenius scan' to record scans and 'codegenius history' to list them.

Examples:
  # Compare the latest two scans of a tree
  codegenius compare ~/src/myproject

  # Compare the latest scan with a specific older one
  codegenius compare --with-scan-id 5 ~/src/myproject

  # Output the comparison as JSON
  codegenius compare --json ~/src/myproject`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64P("with-scan-id", "i", 0,
		"Compare with a specific scan by ID (use 'codegenius history' to see IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	withScanID, err := cmd.Flags().GetInt64("with-scan-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// History rows store absolute roots; resolve the argument the same way
	// the walk step does.
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve directory %q: %w", args[0], err)
	}

	db, err := history.Open(config.XDGDataDir(), history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only comparison

	return runComparison(context.Background(), db, root, withScanID, jsonOutput)
}

// runComparison performs the comparison between two scan summaries.
func runComparison(ctx context.Context, db *history.ScanDB, root string, withScanID int64, jsonOutput bool) error {
	records, err := db.ListScans(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(records) == 0 {
		return fmt.Errorf("no scan history found for %s", root)
	}
	if len(records) < 2 && withScanID == 0 {
		return fmt.Errorf("at least 2 scans are required for comparison (found %d)", len(records))
	}

	// The newest scan is always the current side.
	current := records[0]

	var previous *history.Record
	if withScanID > 0 {
		previous, err = db.GetScanByID(ctx, withScanID)
		if err != nil {
			return fmt.Errorf("failed to get scan with ID %d: %w", withScanID, err)
		}
		if previous == nil {
			return fmt.Errorf("scan with ID %d not found", withScanID)
		}
		if previous.Root != root {
			return fmt.Errorf("scan ID %d belongs to %s, not %s", withScanID, previous.Root, root)
		}
		if previous.ID == current.ID {
			return errors.New("cannot compare a scan with itself")
		}
	} else {
		previous = &records[1]
	}

	comparison := compareRecords(previous, &current)

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two scan summaries.
type ComparisonResult struct {
	// Root is the compared source tree.
	Root string `json:"root"`

	// PreviousScan contains metadata about the older scan.
	PreviousScan ScanMetadata `json:"previous_scan"`

	// CurrentScan contains metadata about the newer scan.
	CurrentScan ScanMetadata `json:"current_scan"`

	// LanguageChanges lists per-family file count movements, covering
	// every family present in either scan.
	LanguageChanges []LanguageChange `json:"language_changes,omitempty"`

	// FileDelta is the change in total classified files.
	FileDelta int `json:"file_delta"`

	// NodeDelta is the change in total graph nodes.
	NodeDelta int `json:"node_delta"`

	// EdgeDelta is the change in total graph edges.
	EdgeDelta int `json:"edge_delta"`

	// ArtifactChanged reports whether the artifact digest moved between
	// the two scans. False when either digest is missing.
	ArtifactChanged bool `json:"artifact_changed"`

	// Direction summarizes the overall size movement of the tree.
	Direction string `json:"direction"`
}

// ScanMetadata contains summary information about one scan side.
type ScanMetadata struct {
	// ID is the scan's database identifier.
	ID int64 `json:"id"`

	// Timestamp is when the scan was performed.
	Timestamp time.Time `json:"timestamp"`

	// TotalFiles is the number of classified files.
	TotalFiles int `json:"total_files"`

	// NodeCount is the graph node total.
	NodeCount int `json:"node_count"`

	// EdgeCount is the graph edge total.
	EdgeCount int `json:"edge_count"`
}

// LanguageChange is the file count movement of one language family.
type LanguageChange struct {
	// Language is the family display name.
	Language string `json:"language"`

	// Previous is the file count in the older scan.
	Previous int `json:"previous"`

	// Current is the file count in the newer scan.
	Current int `json:"current"`
}

// compareRecords builds the comparison between two summary rows.
func compareRecords(previous, current *history.Record) *ComparisonResult {
	result := &ComparisonResult{
		Root: current.Root,
		PreviousScan: ScanMetadata{
			ID:         previous.ID,
			Timestamp:  previous.Timestamp,
			TotalFiles: previous.TotalFiles,
			NodeCount:  previous.NodeCount,
			EdgeCount:  previous.EdgeCount,
		},
		CurrentScan: ScanMetadata{
			ID:         current.ID,
			Timestamp:  current.Timestamp,
			TotalFiles: current.TotalFiles,
			NodeCount:  current.NodeCount,
			EdgeCount:  current.EdgeCount,
		},
		FileDelta: current.TotalFiles - previous.TotalFiles,
		NodeDelta: current.NodeCount - previous.NodeCount,
		EdgeDelta: current.EdgeCount - previous.EdgeCount,
	}

	// Union of families seen on either side, sorted for stable output.
	families := make(map[string]struct{})
	for lang := range previous.LanguageCounts {
		families[lang] = struct{}{}
	}
	for lang := range current.LanguageCounts {
		families[lang] = struct{}{}
	}
	names := make([]string, 0, len(families))
	for lang := range families {
		names = append(names, lang)
	}
	sort.Strings(names)

	for _, lang := range names {
		prev := previous.LanguageCounts[lang]
		curr := current.LanguageCounts[lang]
		if prev == curr {
			continue
		}
		result.LanguageChanges = append(result.LanguageChanges, LanguageChange{
			Language: lang,
			Previous: prev,
			Current:  curr,
		})
	}

	if previous.ArtifactDigest != "" && current.ArtifactDigest != "" {
		result.ArtifactChanged = previous.ArtifactDigest != current.ArtifactDigest
	}

	switch {
	case result.FileDelta > 0 || (result.FileDelta == 0 && result.NodeDelta > 0):
		result.Direction = changeDirectionGrew
	case result.FileDelta < 0 || (result.FileDelta == 0 && result.NodeDelta < 0):
		result.Direction = changeDirectionShrank
	default:
		result.Direction = changeDirectionUnchanged
	}

	return result
}

// outputComparisonText prints a human-readable comparison.
func outputComparisonText(c *ComparisonResult) error {
	fmt.Printf("Comparison for %s\n\n", c.Root)

	fmt.Printf("  Previous scan: #%d at %s (%d files, %d nodes, %d edges)\n",
		c.PreviousScan.ID,
		c.PreviousScan.Timestamp.Format("2006-01-02 15:04:05"),
		c.PreviousScan.TotalFiles,
		c.PreviousScan.NodeCount,
		c.PreviousScan.EdgeCount,
	)
	fmt.Printf("  Current scan:  #%d at %s (%d files, %d nodes, %d edges)\n\n",
		c.CurrentScan.ID,
		c.CurrentScan.Timestamp.Format("2006-01-02 15:04:05"),
		c.CurrentScan.TotalFiles,
		c.CurrentScan.NodeCount,
		c.CurrentScan.EdgeCount,
	)

	fmt.Printf("  Files: %+d   Nodes: %+d   Edges: %+d\n", c.FileDelta, c.NodeDelta, c.EdgeDelta)

	if len(c.LanguageChanges) > 0 {
		fmt.Println("\n  Per-language file counts:")
		for _, change := range c.LanguageChanges {
			fmt.Printf("    %-22s %d -> %d\n", change.Language, change.Previous, change.Current)
		}
	}

	fmt.Println()
	if c.ArtifactChanged {
		fmt.Println("  Artifact content changed between the two scans.")
	} else {
		fmt.Println("  Artifact content is unchanged.")
	}
	fmt.Printf("  Overall the tree %s.\n", c.Direction)

	return nil
}
