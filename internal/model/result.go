package model

import (
	"os"
	"time"
)

// FileRecord is one discovered source file.
// Records are immutable once created and live for a single scan.
type FileRecord struct {
	// RelPath is the path relative to the scan root, using forward slashes.
	RelPath string `json:"rel_path"`

	// AbsPath is the absolute filesystem path.
	AbsPath string `json:"abs_path"`

	// Language is the classified family; never LanguageUnclassified inside
	// a bucket.
	Language Language `json:"-"`
}

// ScanResult is the per-scan aggregate: file buckets, readme summary, and
// one dependency graph per covered language family.
//
// A ScanResult is created fresh per invocation and has no relationship to
// any prior scan. There is no incremental state and no caching across runs.
type ScanResult struct {
	// Root is the absolute path of the scanned root directory.
	Root string

	// StartedAt is the timestamp when the scan began.
	StartedAt time.Time

	// Buckets partitions discovered files by language family.
	// A file appears in at most one bucket (first-match-wins).
	Buckets map[Language][]FileRecord

	// ReadmeSummary is the first non-blank README line with heading markup
	// stripped; empty when no candidate file was found or readable.
	ReadmeSummary string

	// Graphs holds one dependency graph per covered language family.
	// Families without an extractor never get a graph.
	Graphs map[Language]*DependencyGraph

	// ArtifactPath is the path the rendered report was written to.
	// Set by the render step.
	ArtifactPath string

	// PerformedSteps records the names of pipeline steps that ran.
	PerformedSteps []string

	// ErrorMessage holds the first step failure, if any.
	ErrorMessage string
}

// NewScanResult creates an empty result for the given absolute root.
func NewScanResult(root string) *ScanResult {
	return &ScanResult{
		Root:      root,
		StartedAt: time.Now(),
		Buckets:   make(map[Language][]FileRecord),
		Graphs:    make(map[Language]*DependencyGraph),
	}
}

// AddFile appends a record to its language bucket.
// Unclassified records are silently dropped; exclusion from all buckets is
// the contract, not an error.
func (r *ScanResult) AddFile(record FileRecord) {
	if record.Language == LanguageUnclassified {
		return
	}
	r.Buckets[record.Language] = append(r.Buckets[record.Language], record)
}

// FilesFor returns the bucket for one family; nil when empty.
func (r *ScanResult) FilesFor(lang Language) []FileRecord {
	return r.Buckets[lang]
}

// CountFor returns the number of files in one family's bucket.
func (r *ScanResult) CountFor(lang Language) int {
	return len(r.Buckets[lang])
}

// TotalFiles returns the number of files across all buckets.
func (r *ScanResult) TotalFiles() int {
	total := 0
	for _, files := range r.Buckets {
		total += len(files)
	}
	return total
}

// Graph returns the family's dependency graph, creating it on first use.
func (r *ScanResult) Graph(lang Language) *DependencyGraph {
	g, ok := r.Graphs[lang]
	if !ok {
		g = NewDependencyGraph()
		r.Graphs[lang] = g
	}
	return g
}

// TotalNodes returns the node count summed over all graphs.
func (r *ScanResult) TotalNodes() int {
	total := 0
	for _, g := range r.Graphs {
		total += g.NodeCount()
	}
	return total
}

// TotalEdges returns the edge count summed over all graphs.
func (r *ScanResult) TotalEdges() int {
	total := 0
	for _, g := range r.Graphs {
		total += g.EdgeCount()
	}
	return total
}

// Outcome is the summary crossing the caller boundary: callers see the
// resolved root, the artifact location, and whether the scan succeeded.
// Internal graph structures never cross this boundary.
//
// The JSON field names are a stable contract for integrating front ends.
type Outcome struct {
	// OK reports whether the scan completed and the artifact was written.
	OK bool `json:"ok"`

	// Root is the absolute resolved scan root.
	Root string `json:"root"`

	// ArtifactPath is the rendered document's path.
	ArtifactPath string `json:"docs_path"`

	// ArtifactExists reports whether the artifact is present on disk.
	ArtifactExists bool `json:"exists"`

	// SizeBytes is the artifact's size, zero when absent.
	SizeBytes int64 `json:"size_bytes"`

	// Error is the failure description when OK is false.
	Error string `json:"error,omitempty"`
}

// Outcome builds the caller-facing summary by probing the artifact path.
func (r *ScanResult) Outcome() Outcome {
	out := Outcome{
		OK:           r.ErrorMessage == "",
		Root:         r.Root,
		ArtifactPath: r.ArtifactPath,
		Error:        r.ErrorMessage,
	}
	if r.ArtifactPath == "" {
		return out
	}
	info, err := os.Stat(r.ArtifactPath)
	if err != nil {
		return out
	}
	out.ArtifactExists = true
	out.SizeBytes = info.Size()
	return out
}
