package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newCapturingLogger returns a logger writing text records into buf with a
// PathHandler whose home is fixed for deterministic assertions.
func newCapturingLogger(buf *bytes.Buffer, home string) *slog.Logger {
	textHandler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h := &PathHandler{handler: textHandler, home: home}
	return slog.New(h)
}

func TestPathHandlerHomeAbbreviation(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(os.PathSeparator)+"home", "alice")

	t.Run("path under home gets tilde prefix", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newCapturingLogger(&buf, home)

		logger.Info("artifact written", "path", filepath.Join(home, "src", "demo", "docs.md"))

		out := buf.String()
		if !strings.Contains(out, "~"+string(os.PathSeparator)+"src") {
			t.Errorf("output %q missing tilde-abbreviated path", out)
		}
		if strings.Contains(out, home) {
			t.Errorf("output %q still contains raw home prefix", out)
		}
	})

	t.Run("home itself becomes tilde", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newCapturingLogger(&buf, home)

		logger.Info("scanning", "root", home)

		if !strings.Contains(buf.String(), "root=~") {
			t.Errorf("output %q missing bare tilde", buf.String())
		}
	})

	t.Run("path outside home is untouched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newCapturingLogger(&buf, home)

		logger.Info("scanning", "root", "/srv/data/project")

		if !strings.Contains(buf.String(), "/srv/data/project") {
			t.Errorf("output %q altered a path outside home", buf.String())
		}
	})

	t.Run("sibling directory with home prefix string is untouched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newCapturingLogger(&buf, home)

		// /home/alicesmith must not match /home/alice.
		logger.Info("scanning", "root", home+"smith/project")

		if strings.Contains(buf.String(), "~smith") || strings.Contains(buf.String(), "~/smith") {
			t.Errorf("output %q wrongly abbreviated a sibling directory", buf.String())
		}
	})
}

func TestPathHandlerElision(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newCapturingLogger(&buf, "")

	long := "/data/" + strings.Repeat("deeply-nested/", 20) + "leaf.py"
	logger.Info("skipping unreadable path", "path", long)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("long path logged without elision")
	}
	if !strings.Contains(out, "...") {
		t.Errorf("output %q missing elision marker", out)
	}
	if !strings.Contains(out, "leaf.py") {
		t.Errorf("output %q lost the path tail", out)
	}
}

func TestPathHandlerNonPathAttrsUntouched(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newCapturingLogger(&buf, "/home/alice")

	logger.Info("extraction complete",
		"language", "Python",
		"nodes", 42,
	)

	out := buf.String()
	if !strings.Contains(out, "language=Python") {
		t.Errorf("output %q altered non-path attribute", out)
	}
	if !strings.Contains(out, "nodes=42") {
		t.Errorf("output %q altered numeric attribute", out)
	}
}

func TestPathHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newCapturingLogger(&buf, "/home/alice")

	logger.With(slog.Group("scan", slog.String("root", "/home/alice/src"))).Info("started")

	if !strings.Contains(buf.String(), "~"+string(os.PathSeparator)+"src") {
		t.Errorf("output %q missing abbreviation inside group", buf.String())
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug level not enabled with verbose")
		}
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		if logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("info level enabled without verbose")
		}
	})
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)
	logger.Debug("probe", "path", "/srv/x")

	out := buf.String()
	if !strings.Contains(out, `"msg":"probe"`) {
		t.Errorf("output %q is not JSON formatted", out)
	}
}
