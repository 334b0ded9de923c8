// Package report renders scan results into the markdown artifact.
//
// The artifact layout is a stable contract for consumers: title, scanned
// root, per-language summary, optional README blockquote, one mermaid
// diagram section per covered language family (with an explicit placeholder
// when no edges were detected), and per-language file listings.
//
// Design decision: We separate rendering (MarkdownWriter, to any io.Writer)
// from placement (WriteArtifact, atomic file replacement) so tests and
// alternative destinations can reuse the renderer. The atomic discipline is
// temp-file-plus-rename in the destination directory: a reader never
// observes a partially written artifact, and a failed write leaves any
// prior artifact untouched. Two scans racing on the same output path are
// last-writer-wins; the package does not guard against that.
package report
