package extractor

import (
	"testing"

	"github.com/codegenius/codegenius/internal/model"
)

// TestCExtract tests include-edge extraction for the C/C++ family.
func TestCExtract(t *testing.T) {
	t.Parallel()

	t.Run("quoted includes resolve by basename", func(t *testing.T) {
		t.Parallel()

		bucket := writeBucket(t, model.LanguageC, map[string]string{
			"main.c":   "#include \"parser.h\"\n#include <stdio.h>\n\nint main(void) { return 0; }\n",
			"parser.h": "void parse(void);\n",
			"parser.c": "#include \"parser.h\"\n",
		})

		g := model.NewDependencyGraph()
		NewCExtractor().Extract(bucket, g)

		if !hasEdge(g, model.NodeID("file::main"), model.NodeID("file::parser"), model.EdgeKindImports) {
			t.Error("expected main --> parser include edge")
		}
		// <stdio.h> is a system header, never resolved.
		if g.HasNode(model.NodeID("file::stdio")) {
			t.Error("unexpected node for system include")
		}
		// parser.c including parser.h is a self-edge after stem collapse.
		if g.EdgeCount() != 1 {
			t.Errorf("expected exactly 1 edge, got %d", g.EdgeCount())
		}
	})

	t.Run("cpp headers participate", func(t *testing.T) {
		t.Parallel()

		bucket := writeBucket(t, model.LanguageC, map[string]string{
			"engine.cpp": "#include \"render.hpp\"\n",
			"render.hpp": "struct Renderer {};\n",
		})

		g := model.NewDependencyGraph()
		NewCExtractor().Extract(bucket, g)

		if !hasEdge(g, model.NodeID("file::engine"), model.NodeID("file::render"), model.EdgeKindImports) {
			t.Error("expected engine --> render include edge")
		}
	})

	t.Run("duplicate includes collapse to one edge", func(t *testing.T) {
		t.Parallel()

		bucket := writeBucket(t, model.LanguageC, map[string]string{
			"a.c":    "#include \"util.h\"\n#include \"util.h\"\n",
			"util.h": "int util(void);\n",
		})

		g := model.NewDependencyGraph()
		NewCExtractor().Extract(bucket, g)

		if g.EdgeCount() != 1 {
			t.Errorf("expected 1 edge, got %d", g.EdgeCount())
		}
	})
}
