package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codegenius/codegenius/internal/model"
)

// WriteArtifact renders the result and atomically places it at path,
// creating parent directories as needed. The content is fully materialized
// in memory, written to a temporary file beside the destination, and
// renamed into place; any failure leaves a prior artifact at path intact.
func WriteArtifact(result *model.ScanResult, path string) error {
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic replaces path with data via temp file and rename.
// The temp file lives in the destination directory so the rename stays on
// one filesystem and is atomic on POSIX systems.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
