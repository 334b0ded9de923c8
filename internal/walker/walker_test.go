package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// collect walks the root and returns all relative paths.
func collect(t *testing.T, w *Walker) []string {
	t.Helper()
	var paths []string
	err := w.Walk(func(_, relPath string) error {
		paths = append(paths, relPath)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
	return paths
}

// TestNew tests root validation.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("fails for missing root", func(t *testing.T) {
		t.Parallel()

		_, err := New(filepath.Join(t.TempDir(), "nonexistent"))
		if err == nil {
			t.Error("expected error for missing root")
		}
	})

	t.Run("fails when root is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		file := filepath.Join(dir, "file.txt")
		writeFile(t, file, "x")

		_, err := New(file)
		if err == nil {
			t.Error("expected error for non-directory root")
		}
	})

	t.Run("resolves root to absolute path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w, err := New(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !filepath.IsAbs(w.Root()) {
			t.Errorf("expected absolute root, got %s", w.Root())
		}
	})
}

// TestWalk tests file enumeration and directory pruning.
func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("finds files recursively in sorted order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.py"), "")
		writeFile(t, filepath.Join(dir, "a.py"), "")
		writeFile(t, filepath.Join(dir, "src", "c.py"), "")

		w, err := New(dir)
		if err != nil {
			t.Fatal(err)
		}

		paths := collect(t, w)
		expected := []string{"a.py", "b.py", "src/c.py"}
		if len(paths) != len(expected) {
			t.Fatalf("expected %d files, got %d: %v", len(expected), len(paths), paths)
		}
		for i, p := range expected {
			if paths[i] != p {
				t.Errorf("position %d: got %s, expected %s", i, paths[i], p)
			}
		}
		if !sort.StringsAreSorted(paths) {
			t.Error("expected lexically sorted paths")
		}
	})

	t.Run("prunes noise directories anywhere in the tree", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "keep.py"), "")
		writeFile(t, filepath.Join(dir, "node_modules", "lib", "x.js"), "")
		writeFile(t, filepath.Join(dir, "src", ".git", "config.py"), "")
		writeFile(t, filepath.Join(dir, "deep", "nested", "__pycache__", "y.py"), "")

		w, err := New(dir)
		if err != nil {
			t.Fatal(err)
		}

		paths := collect(t, w)
		if len(paths) != 1 || paths[0] != "keep.py" {
			t.Errorf("expected only keep.py, got %v", paths)
		}
	})

	t.Run("prunes hidden directories but keeps hidden files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".hidden", "a.py"), "")
		writeFile(t, filepath.Join(dir, ".env.py"), "")

		w, err := New(dir)
		if err != nil {
			t.Fatal(err)
		}

		paths := collect(t, w)
		if len(paths) != 1 || paths[0] != ".env.py" {
			t.Errorf("expected only .env.py, got %v", paths)
		}
	})

	t.Run("honors extra ignore dirs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "vendor", "x.go"), "")
		writeFile(t, filepath.Join(dir, "main.go"), "")

		w, err := New(dir, WithExtraIgnoreDirs([]string{"vendor"}))
		if err != nil {
			t.Fatal(err)
		}

		paths := collect(t, w)
		if len(paths) != 1 || paths[0] != "main.go" {
			t.Errorf("expected only main.go, got %v", paths)
		}
	})

	t.Run("honors gitignore when enabled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".gitignore"), "generated/\n*.tmp.py\n")
		writeFile(t, filepath.Join(dir, "generated", "g.py"), "")
		writeFile(t, filepath.Join(dir, "scratch.tmp.py"), "")
		writeFile(t, filepath.Join(dir, "main.py"), "")

		w, err := New(dir, WithGitignore(true))
		if err != nil {
			t.Fatal(err)
		}

		paths := collect(t, w)
		if len(paths) != 2 {
			t.Fatalf("expected 2 files, got %v", paths)
		}
		if paths[0] != ".gitignore" || paths[1] != "main.py" {
			t.Errorf("unexpected paths: %v", paths)
		}
	})

	t.Run("gitignore disabled by default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".gitignore"), "*.py\n")
		writeFile(t, filepath.Join(dir, "main.py"), "")

		w, err := New(dir)
		if err != nil {
			t.Fatal(err)
		}

		paths := collect(t, w)
		found := false
		for _, p := range paths {
			if p == "main.py" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected main.py to be listed, got %v", paths)
		}
	})
}
