package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/codegenius/codegenius/internal/model"
)

// newScanFactory returns a factory building the standard four-step pipeline.
func newScanFactory() func(root string) *Pipeline {
	return func(_ string) *Pipeline {
		p := New(WithLogger(slog.Default()))
		p.AddSteps(
			NewWalkStep(),
			NewReadmeStep(nil),
			NewExtractStep(),
			NewRenderStep(),
		)
		return p
	}
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("scans multiple roots and keeps input order", func(t *testing.T) {
		t.Parallel()

		roots := make([]string, 3)
		for i := range roots {
			roots[i] = t.TempDir()
			path := filepath.Join(roots[i], "main.py")
			if err := os.WriteFile(path, []byte("def main(): pass\n"), 0600); err != nil {
				t.Fatal(err)
			}
		}

		bp := NewBatchProcessor(newScanFactory(), WithConcurrency(2))
		results, err := bp.ProcessBatch(context.Background(), roots)
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v, want nil", err)
		}

		if len(results) != len(roots) {
			t.Fatalf("got %d results, want %d", len(results), len(roots))
		}
		for i, result := range results {
			if result == nil {
				t.Fatalf("results[%d] is nil", i)
			}
			if result.Root != roots[i] {
				t.Errorf("results[%d].Root = %q, want %q", i, result.Root, roots[i])
			}
			if !result.Outcome().OK {
				t.Errorf("results[%d] failed: %s", i, result.ErrorMessage)
			}
		}
	})

	t.Run("failed root does not abort the batch", func(t *testing.T) {
		t.Parallel()

		good := t.TempDir()
		bad := filepath.Join(t.TempDir(), "missing")

		bp := NewBatchProcessor(newScanFactory())
		results, err := bp.ProcessBatch(context.Background(), []string{bad, good})
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v, want nil", err)
		}

		if results[0].ErrorMessage == "" {
			t.Error("bad root has no recorded error")
		}
		if !results[1].Outcome().OK {
			t.Errorf("good root failed: %s", results[1].ErrorMessage)
		}
	})

	t.Run("empty batch yields no results", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(newScanFactory())
		results, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v, want nil", err)
		}
		if len(results) != 0 {
			t.Errorf("got %d results, want 0", len(results))
		}
	})
}

func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	roots := []string{t.TempDir(), t.TempDir()}

	var mu sync.Mutex
	seen := make(map[int]bool)

	bp := NewBatchProcessor(newScanFactory(), WithConcurrency(1))
	err := bp.ProcessBatchWithCallback(context.Background(), roots,
		func(result *model.ScanResult, index int) {
			mu.Lock()
			defer mu.Unlock()
			seen[index] = result != nil && result.Outcome().OK
		})
	if err != nil {
		t.Fatalf("ProcessBatchWithCallback() error = %v, want nil", err)
	}

	for i := range roots {
		if !seen[i] {
			t.Errorf("callback for index %d missing or failed", i)
		}
	}
}
