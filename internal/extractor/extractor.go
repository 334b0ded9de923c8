package extractor

import (
	"log/slog"

	"github.com/codegenius/codegenius/internal/model"
)

// Extractor defines the per-family symbol and edge extraction strategy.
// Implementations scan a bucket of files and populate the family's graph.
type Extractor interface {
	// Language returns the family this strategy covers.
	Language() model.Language

	// Extract scans the bucket and records nodes and edges in g.
	// Extraction is best-effort: undecodable files are skipped, heuristic
	// misses are silent, and no failure aborts the scan.
	Extract(bucket []model.FileRecord, g *model.DependencyGraph)
}

// registry is the fixed dispatch table of covered families.
// Families absent here (Go, Rust, Java) stay inventory-only: their import
// units are packages, crates, or classpath entries, which file-basename
// resolution cannot honestly model.
func registry(logger *slog.Logger) map[model.Language]Extractor {
	return map[model.Language]Extractor{
		model.LanguagePython:     NewPythonExtractor(WithPythonLogger(logger)),
		model.LanguageJavaScript: NewJavaScriptExtractor(WithJavaScriptLogger(logger)),
		model.LanguageC:          NewCExtractor(WithCLogger(logger)),
	}
}

// For returns the extractor covering the family, or false when the family
// is inventory-only.
func For(lang model.Language, logger *slog.Logger) (Extractor, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	e, ok := registry(logger)[lang]
	return e, ok
}

// Covered returns the families with an extractor, in report section order.
func Covered() []model.Language {
	covered := make([]model.Language, 0, 3)
	reg := registry(slog.Default())
	for _, lang := range model.Languages() {
		if _, ok := reg[lang]; ok {
			covered = append(covered, lang)
		}
	}
	return covered
}
