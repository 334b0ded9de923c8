package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/codegenius/codegenius/internal/model"
)

// Writer defines the interface for artifact output.
type Writer interface {
	// Write renders the scan result to the configured destination.
	// Returns the number of bytes rendered and any error encountered.
	Write(result *model.ScanResult) (int, error)
}

// MarkdownWriter renders the scan result as the markdown artifact.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation; its mermaid code-block support produces the fenced diagram
// sections the artifact contract requires.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that renders to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// mermaidUnsafe matches character runs that mermaid node ids cannot carry.
var mermaidUnsafe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// mermaidID flattens a node identity into a mermaid-safe id,
// e.g. "function::parse" becomes "function_parse".
func mermaidID(id model.NodeID) string {
	return strings.Trim(mermaidUnsafe.ReplaceAllString(string(id), "_"), "_")
}

// Write renders the full artifact.
// Section order is fixed: title, scanned root, summary, README line,
// diagrams for covered families, then file listings for every family.
func (w *MarkdownWriter) Write(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Codegenius Docs")
	md.PlainText("")
	md.PlainTextf("Scanned root: `%s`", result.Root)
	md.PlainText("")

	w.writeSummary(md, result)
	w.writeReadme(md, result)
	w.writeDiagrams(md, result)
	w.writeFileListings(md, result)

	return len(md.String()), md.Build()
}

// writeSummary writes one bullet per language family with its file count.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.ScanResult) {
	md.H2("Summary")
	md.PlainText("")

	bullets := make([]string, 0, len(model.Languages()))
	for _, lang := range model.Languages() {
		bullets = append(bullets, fmt.Sprintf("%s: %d", lang, result.CountFor(lang)))
	}
	md.BulletList(bullets...)
	md.PlainText("")
}

// writeReadme writes the README summary blockquote when one was found.
func (w *MarkdownWriter) writeReadme(md *markdown.Markdown, result *model.ScanResult) {
	if result.ReadmeSummary == "" {
		return
	}
	md.H2("README summary")
	md.PlainText("")
	md.Blockquote(result.ReadmeSummary)
	md.PlainText("")
}

// writeDiagrams writes one mermaid section per family that has a graph.
// A covered family with zero edges gets an explicit placeholder rather
// than a missing section.
func (w *MarkdownWriter) writeDiagrams(md *markdown.Markdown, result *model.ScanResult) {
	for _, lang := range model.Languages() {
		g, ok := result.Graphs[lang]
		if !ok {
			continue
		}
		md.H2(fmt.Sprintf("%s dependency graph", lang))
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, diagramBody(g))
		md.PlainText("")
	}
}

// diagramBody builds the fenced block content: one "src --> dst" line per
// edge in graph order.
func diagramBody(g *model.DependencyGraph) string {
	lines := []string{"graph LR"}
	edges := g.Edges()
	if len(edges) == 0 {
		lines = append(lines, "%% no edges detected")
	}
	for _, e := range edges {
		lines = append(lines, fmt.Sprintf("  %s --> %s", mermaidID(e.Src), mermaidID(e.Dst)))
	}
	return strings.Join(lines, "\n")
}

// writeFileListings writes the per-language inventory, every family
// present, empty ones marked explicitly.
func (w *MarkdownWriter) writeFileListings(md *markdown.Markdown, result *model.ScanResult) {
	for _, lang := range model.Languages() {
		md.H2(fmt.Sprintf("%s files", lang))
		md.PlainText("")

		files := result.FilesFor(lang)
		if len(files) == 0 {
			md.PlainText("_None_")
			md.PlainText("")
			continue
		}

		bullets := make([]string, 0, len(files))
		for _, f := range files {
			bullets = append(bullets, "`"+f.RelPath+"`")
		}
		md.BulletList(bullets...)
		md.PlainText("")
	}
}
