package extractor

import (
	"log/slog"
	"path"
	"regexp"

	"github.com/codegenius/codegenius/internal/model"
)

// cIncludeRe matches quoted local includes. Angle-bracket includes name
// system headers outside the tree and are ignored.
var cIncludeRe = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*include[ \t]+"([^"]+)"`)

// CExtractor extracts include edges from the C/C++ family.
//
// Resolution is by extension-stripped basename, so foo.c and foo.h share
// one file node ("file::foo") and the include between them vanishes as a
// self-edge. Cross-translation-unit includes are what the graph shows.
type CExtractor struct {
	logger *slog.Logger
}

// COption configures a CExtractor.
type COption func(*CExtractor)

// WithCLogger sets a custom logger.
func WithCLogger(logger *slog.Logger) COption {
	return func(e *CExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewCExtractor creates a CExtractor.
func NewCExtractor(opts ...COption) *CExtractor {
	e := &CExtractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Language returns the covered family.
func (e *CExtractor) Language() model.Language {
	return model.LanguageC
}

// Extract populates g with file nodes and include edges from the bucket.
func (e *CExtractor) Extract(bucket []model.FileRecord, g *model.DependencyGraph) {
	type cSource struct {
		record model.FileRecord
		text   string
		stem   string
	}

	sources := make([]cSource, 0, len(bucket))
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
		sources = append(sources, cSource{record: record, text: text, stem: stem})
	}

	for _, src := range sources {
		srcID := model.SymbolNode{Kind: model.NodeKindFile, Name: src.stem}.ID()
		for _, m := range cIncludeRe.FindAllStringSubmatch(src.text, -1) {
			target := fileStem(path.Base(m[1]))
			if _, ok := stems[target]; !ok {
				continue
			}
			dstID := model.SymbolNode{Kind: model.NodeKindFile, Name: target}.ID()
			g.AddEdge(srcID, dstID, model.EdgeKindImports, src.record.RelPath)
		}
	}
}
