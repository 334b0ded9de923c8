package extractor

import (
	"testing"

	"github.com/codegenius/codegenius/internal/model"
)

// TestJavaScriptExtract tests import-edge extraction for the JS/TS family.
func TestJavaScriptExtract(t *testing.T) {
	t.Parallel()

	t.Run("esm imports resolve by basename", func(t *testing.T) {
		t.Parallel()

		bucket := writeBucket(t, model.LanguageJavaScript, map[string]string{
			"app.js":  "import { helper } from './util.js';\nimport React from 'react';\n",
			"util.js": "export function helper() {}\n",
		})

		g := model.NewDependencyGraph()
		NewJavaScriptExtractor().Extract(bucket, g)

		if !hasEdge(g, model.NodeID("file::app"), model.NodeID("file::util"), model.EdgeKindImports) {
			t.Error("expected app --> util import edge")
		}
		// Bare package imports never resolve inside the bucket.
		if g.HasNode(model.NodeID("file::react")) {
			t.Error("unexpected node for external package import")
		}
	})

	t.Run("require calls resolve by basename", func(t *testing.T) {
		t.Parallel()

		bucket := writeBucket(t, model.LanguageJavaScript, map[string]string{
			"index.cjs":  "const config = require('./config');\n",
			"config.cjs": "module.exports = {};\n",
		})

		g := model.NewDependencyGraph()
		NewJavaScriptExtractor().Extract(bucket, g)

		if !hasEdge(g, model.NodeID("file::index"), model.NodeID("file::config"), model.EdgeKindImports) {
			t.Error("expected index --> config import edge")
		}
	})

	t.Run("typescript and jsx files share the bucket", func(t *testing.T) {
		t.Parallel()

		bucket := writeBucket(t, model.LanguageJavaScript, map[string]string{
			"App.tsx":   "import { store } from '../state/store';\n",
			"store.ts":  "export const store = {};\n",
			"styles.ts": "export {};\n",
		})

		g := model.NewDependencyGraph()
		NewJavaScriptExtractor().Extract(bucket, g)

		if !hasEdge(g, model.NodeID("file::App"), model.NodeID("file::store"), model.EdgeKindImports) {
			t.Error("expected App --> store import edge")
		}
		if g.EdgeCount() != 1 {
			t.Errorf("expected exactly 1 edge, got %d", g.EdgeCount())
		}
	})

	t.Run("self imports are dropped", func(t *testing.T) {
		t.Parallel()

		// a/util.js and b/util.js collapse to one file node; an import
		// between them is a self-edge under the identity rule.
		bucket := writeBucket(t, model.LanguageJavaScript, map[string]string{
			"a/util.js": "import x from '../b/util';\n",
			"b/util.js": "export default 1;\n",
		})

		g := model.NewDependencyGraph()
		NewJavaScriptExtractor().Extract(bucket, g)

		if g.EdgeCount() != 0 {
			t.Errorf("expected no edges, got %d", g.EdgeCount())
		}
	})

	t.Run("empty bucket yields empty graph", func(t *testing.T) {
		t.Parallel()

		g := model.NewDependencyGraph()
		NewJavaScriptExtractor().Extract(nil, g)

		if g.NodeCount() != 0 || g.EdgeCount() != 0 {
			t.Error("expected empty graph")
		}
	})
}
