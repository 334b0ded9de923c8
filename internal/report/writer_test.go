package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestWriteArtifact tests atomic artifact placement.
func TestWriteArtifact(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories and writes artifact", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "outputs", "docs.md")

		if err := WriteArtifact(createTestResult(), path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("artifact not written: %v", err)
		}
		if !strings.Contains(string(data), "# Codegenius Docs") {
			t.Error("artifact missing title")
		}
	})

	t.Run("replaces a prior artifact completely", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "docs.md")
		if err := os.WriteFile(path, []byte("stale content"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := WriteArtifact(createTestResult(), path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "stale content") {
			t.Error("prior artifact content leaked into replacement")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "docs.md")
		if err := WriteArtifact(createTestResult(), path); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "docs.md" {
			t.Errorf("unexpected directory contents: %v", entries)
		}
	})

	t.Run("failed write leaves prior artifact untouched", func(t *testing.T) {
		t.Parallel()

		if os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced for root")
		}

		dir := t.TempDir()
		path := filepath.Join(dir, "docs.md")
		if err := os.WriteFile(path, []byte("previous artifact"), 0600); err != nil {
			t.Fatal(err)
		}

		// Read-only directory: the temp file cannot be created, so the
		// write fails before the destination is ever touched.
		if err := os.Chmod(dir, 0500); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			_ = os.Chmod(dir, 0700)
		})

		if err := WriteArtifact(createTestResult(), path); err == nil {
			t.Fatal("expected write failure")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "previous artifact" {
			t.Error("prior artifact was modified by a failed write")
		}
	})

	t.Run("fails when parent cannot be created", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "outputs")
		if err := os.WriteFile(blocker, []byte("not a directory"), 0600); err != nil {
			t.Fatal(err)
		}

		err := WriteArtifact(createTestResult(), filepath.Join(blocker, "docs.md"))
		if err == nil {
			t.Error("expected error when parent path is a file")
		}
	})
}
