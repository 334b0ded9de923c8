package extractor

import (
	"log/slog"
	"path"
	"regexp"

	"github.com/codegenius/codegenius/internal/model"
)

// JS/TS import patterns: ESM "import ... from '...'" anchored at line
// starts, and CommonJS require() anywhere on a line.
var (
	jsImportRe  = regexp.MustCompile(`(?m)^[ \t]*import\s+.*?from\s+['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`)
)

// JavaScriptExtractor extracts module import edges from the JavaScript and
// TypeScript family. Import targets resolve only when the target's
// extension-stripped basename names a file in the same bucket; bare package
// names ("react") resolve nowhere and are dropped.
type JavaScriptExtractor struct {
	logger *slog.Logger
}

// JavaScriptOption configures a JavaScriptExtractor.
type JavaScriptOption func(*JavaScriptExtractor)

// WithJavaScriptLogger sets a custom logger.
func WithJavaScriptLogger(logger *slog.Logger) JavaScriptOption {
	return func(e *JavaScriptExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewJavaScriptExtractor creates a JavaScriptExtractor.
func NewJavaScriptExtractor(opts ...JavaScriptOption) *JavaScriptExtractor {
	e := &JavaScriptExtractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Language returns the covered family.
func (e *JavaScriptExtractor) Language() model.Language {
	return model.LanguageJavaScript
}

// Extract populates g with file nodes and import edges from the bucket.
func (e *JavaScriptExtractor) Extract(bucket []model.FileRecord, g *model.DependencyGraph) {
	type jsSource struct {
		record model.FileRecord
		text   string
		stem   string
	}

	sources := make([]jsSource, 0, len(bucket))
	stems := make(map[string]struct{}, len(bucket))

	for _, record := range bucket {
		text, ok := readText(record.AbsPath)
		if !ok {
			e.logger.Debug("skipping undecodable file", "path", record.RelPath)
			continue
		}
		stem := fileStem(record.RelPath)
		g.AddNode(model.NodeKindFile, stem, record.RelPath)
		stems[stem] = struct{}{}
		sources = append(sources, jsSource{record: record, text: text, stem: stem})
	}

	for _, src := range sources {
		srcID := model.SymbolNode{Kind: model.NodeKindFile, Name: src.stem}.ID()
		for _, re := range []*regexp.Regexp{jsImportRe, jsRequireRe} {
			for _, m := range re.FindAllStringSubmatch(src.text, -1) {
				// "./lib/util.js" and "../util" both reduce to "util".
				target := fileStem(path.Base(m[1]))
				if _, ok := stems[target]; !ok {
					continue
				}
				dstID := model.SymbolNode{Kind: model.NodeKindFile, Name: target}.ID()
				g.AddEdge(srcID, dstID, model.EdgeKindImports, src.record.RelPath)
			}
		}
	}
}
