package extractor

import (
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/codegenius/codegenius/internal/model"
)

// Python declaration and import patterns, anchored at line starts.
// Indented declarations (methods, nested functions) count as declarations;
// the identity rule collapses duplicates anyway.
var (
	pyDefRe    = regexp.MustCompile(`(?m)^[ \t]*def[ \t]+([A-Za-z_]\w*)[ \t]*\(`)
	pyClassRe  = regexp.MustCompile(`(?m)^[ \t]*class[ \t]+([A-Za-z_]\w*)[ \t]*[(:]`)
	pyImportRe = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+([A-Za-z0-9_.]+)`)
	pyFromRe   = regexp.MustCompile(`(?m)^[ \t]*from[ \t]+([A-Za-z0-9_.]+)[ \t]+import\b`)
)

// fileStem returns a file's extension-stripped basename, the name used for
// file-kind nodes and import resolution.
func fileStem(relPath string) string {
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// callPattern compiles the call-shaped probe for a symbol name:
// the name on a word boundary immediately followed by an open paren.
func callPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `[ \t]*\(`)
}

// PythonExtractor extracts function/class declarations, call edges, and
// module import edges from Python source.
type PythonExtractor struct {
	logger *slog.Logger
}

// PythonOption configures a PythonExtractor.
type PythonOption func(*PythonExtractor)

// WithPythonLogger sets a custom logger.
func WithPythonLogger(logger *slog.Logger) PythonOption {
	return func(e *PythonExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewPythonExtractor creates a PythonExtractor.
func NewPythonExtractor(opts ...PythonOption) *PythonExtractor {
	e := &PythonExtractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Language returns the covered family.
func (e *PythonExtractor) Language() model.Language {
	return model.LanguagePython
}

// pySource is one decoded bucket file with its declared functions.
type pySource struct {
	record model.FileRecord
	text   string
	stem   string
	funcs  []string
}

// Extract populates g from the Python bucket.
//
// Pass one records declarations and file nodes. Pass two probes every
// (caller, callee) pair across the whole bucket for call edges; pass three
// resolves import heads against bucket basenames for import edges.
func (e *PythonExtractor) Extract(bucket []model.FileRecord, g *model.DependencyGraph) {
	sources := make([]pySource, 0, len(bucket))
	stems := make(map[string]struct{}, len(bucket))

	for _, record := range bucket {
		text, ok := readText(record.AbsPath)
		if !ok {
			e.logger.Debug("skipping undecodable file", "path", record.RelPath)
			continue
		}

		src := pySource{record: record, text: text, stem: fileStem(record.RelPath)}

		seen := make(map[string]struct{})
		for _, m := range pyDefRe.FindAllStringSubmatch(text, -1) {
			name := m[1]
			g.AddNode(model.NodeKindFunction, name, record.RelPath)
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				src.funcs = append(src.funcs, name)
			}
		}
		for _, m := range pyClassRe.FindAllStringSubmatch(text, -1) {
			g.AddNode(model.NodeKindClass, m[1], record.RelPath)
		}

		g.AddNode(model.NodeKindFile, src.stem, record.RelPath)
		stems[src.stem] = struct{}{}
		sources = append(sources, src)
	}

	e.extractCalls(sources, g)
	e.extractImports(sources, stems, g)
}

// extractCalls records a "calls" edge for every function pair where the
// callee's name appears call-shaped in the caller's file text.
// Quadratic in the bucket's function count; accepted by design.
func (e *PythonExtractor) extractCalls(sources []pySource, g *model.DependencyGraph) {
	var callees []string
	patterns := make(map[string]*regexp.Regexp)
	for _, src := range sources {
		for _, name := range src.funcs {
			if _, ok := patterns[name]; ok {
				continue
			}
			patterns[name] = callPattern(name)
			callees = append(callees, name)
		}
	}

	for _, src := range sources {
		for _, caller := range src.funcs {
			callerID := model.SymbolNode{Kind: model.NodeKindFunction, Name: caller}.ID()
			for _, callee := range callees {
				if callee == caller {
					continue
				}
				if !patterns[callee].MatchString(src.text) {
					continue
				}
				calleeID := model.SymbolNode{Kind: model.NodeKindFunction, Name: callee}.ID()
				g.AddEdge(callerID, calleeID, model.EdgeKindCalls, src.record.RelPath)
			}
		}
	}
}

// extractImports resolves "import X" / "from X import" heads against bucket
// basenames. Only the leading module segment is considered, and only exact
// stem matches inside the same bucket resolve; package hierarchies and
// manifests are never consulted.
func (e *PythonExtractor) extractImports(sources []pySource, stems map[string]struct{}, g *model.DependencyGraph) {
	for _, src := range sources {
		srcID := model.SymbolNode{Kind: model.NodeKindFile, Name: src.stem}.ID()
		for _, re := range []*regexp.Regexp{pyImportRe, pyFromRe} {
			for _, m := range re.FindAllStringSubmatch(src.text, -1) {
				head, _, _ := strings.Cut(m[1], ".")
				if _, ok := stems[head]; !ok {
					continue
				}
				dstID := model.SymbolNode{Kind: model.NodeKindFile, Name: head}.ID()
				g.AddEdge(srcID, dstID, model.EdgeKindImports, src.record.RelPath)
			}
		}
	}
}
