package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/codegenius/codegenius/internal/extractor"
	"github.com/codegenius/codegenius/internal/model"
	"github.com/codegenius/codegenius/internal/readme"
	"github.com/codegenius/codegenius/internal/report"
	"github.com/codegenius/codegenius/internal/walker"
)

// Default artifact location, relative to the scan root.
const (
	defaultArtifactDir  = "outputs"
	defaultArtifactName = "docs.md"
)

// WalkStep enumerates files under the scan root and partitions them into
// language buckets. It resolves the root to an absolute path and rewrites
// result.Root, so later steps can rely on it being absolute.
type WalkStep struct {
	// extraIgnoreDirs is appended to the walker's default prune set.
	extraIgnoreDirs []string

	// useGitignore enables honoring a .gitignore at the root.
	useGitignore bool

	// logger for structured logging.
	logger *slog.Logger
}

// WalkOption configures a WalkStep.
type WalkOption func(*WalkStep)

// WithWalkExtraIgnoreDirs adds directory names to the prune set.
func WithWalkExtraIgnoreDirs(dirs []string) WalkOption {
	return func(s *WalkStep) {
		s.extraIgnoreDirs = dirs
	}
}

// WithWalkGitignore enables .gitignore handling during the walk.
func WithWalkGitignore(use bool) WalkOption {
	return func(s *WalkStep) {
		s.useGitignore = use
	}
}

// WithWalkLogger sets a custom logger for the walk step.
func WithWalkLogger(logger *slog.Logger) WalkOption {
	return func(s *WalkStep) {
		s.logger = logger
	}
}

// NewWalkStep creates a walk step with the given options.
func NewWalkStep(opts ...WalkOption) *WalkStep {
	s := &WalkStep{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name for logging.
func (s *WalkStep) Name() string {
	return "walk"
}

// Do walks the tree and fills the result's language buckets.
// A bad root (missing, unreadable, not a directory) fails the step; files
// that classify to no family are dropped silently per the bucket contract.
func (s *WalkStep) Do(ctx context.Context, result *model.ScanResult) error {
	w, err := walker.New(result.Root,
		walker.WithExtraIgnoreDirs(s.extraIgnoreDirs),
		walker.WithGitignore(s.useGitignore),
		walker.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	result.Root = w.Root()

	err = w.Walk(func(absPath, relPath string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result.AddFile(model.FileRecord{
			RelPath:  relPath,
			AbsPath:  absPath,
			Language: model.ClassifyPath(relPath),
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("walk complete",
		"root", result.Root,
		"files", result.TotalFiles(),
	)
	return nil
}

// ReadmeStep pulls a one-line summary from the root README, when one exists.
type ReadmeStep struct {
	logger *slog.Logger
}

// NewReadmeStep creates a readme step.
func NewReadmeStep(logger *slog.Logger) *ReadmeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadmeStep{logger: logger}
}

// Name returns the step name for logging.
func (s *ReadmeStep) Name() string {
	return "readme"
}

// Do extracts the README summary. A missing or unreadable README is not an
// error; the summary simply stays empty.
func (s *ReadmeStep) Do(_ context.Context, result *model.ScanResult) error {
	summary, found := readme.Extract(result.Root)
	result.ReadmeSummary = summary
	if !found {
		s.logger.Debug("no readme found", "root", result.Root)
		return nil
	}
	s.logger.Debug("readme summary extracted", "summary", summary)
	return nil
}

// ExtractStep runs the per-family extractors and builds dependency graphs.
type ExtractStep struct {
	// languages restricts extraction to the listed families.
	// Empty means all covered families.
	languages []model.Language

	// logger for structured logging.
	logger *slog.Logger
}

// ExtractOption configures an ExtractStep.
type ExtractOption func(*ExtractStep)

// WithExtractLanguages restricts extraction to the given families.
// Families without an extractor are silently ignored.
func WithExtractLanguages(langs []model.Language) ExtractOption {
	return func(s *ExtractStep) {
		s.languages = langs
	}
}

// WithExtractLogger sets a custom logger for the extract step.
func WithExtractLogger(logger *slog.Logger) ExtractOption {
	return func(s *ExtractStep) {
		s.logger = logger
	}
}

// NewExtractStep creates an extract step with the given options.
func NewExtractStep(opts ...ExtractOption) *ExtractStep {
	s := &ExtractStep{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name for logging.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do runs every selected extractor over its bucket.
// A covered family always gets a graph, even when its bucket is empty, so
// the rendered report shows an explicit empty diagram rather than nothing.
func (s *ExtractStep) Do(ctx context.Context, result *model.ScanResult) error {
	langs := s.languages
	if len(langs) == 0 {
		langs = extractor.Covered()
	}

	for _, lang := range langs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ext, ok := extractor.For(lang, s.logger)
		if !ok {
			continue
		}

		g := result.Graph(lang)
		ext.Extract(result.FilesFor(lang), g)

		s.logger.Info("extraction complete",
			"language", lang.String(),
			"files", result.CountFor(lang),
			"nodes", g.NodeCount(),
			"edges", g.EdgeCount(),
		)
	}
	return nil
}

// RenderStep writes the markdown artifact.
type RenderStep struct {
	// outputPath overrides the default artifact location when non-empty.
	outputPath string

	// logger for structured logging.
	logger *slog.Logger
}

// RenderOption configures a RenderStep.
type RenderOption func(*RenderStep)

// WithRenderOutputPath overrides the artifact path.
// Relative paths are resolved against the process working directory, not
// the scan root, matching how shells resolve -o style flags.
func WithRenderOutputPath(path string) RenderOption {
	return func(s *RenderStep) {
		s.outputPath = path
	}
}

// WithRenderLogger sets a custom logger for the render step.
func WithRenderLogger(logger *slog.Logger) RenderOption {
	return func(s *RenderStep) {
		s.logger = logger
	}
}

// NewRenderStep creates a render step with the given options.
func NewRenderStep(opts ...RenderOption) *RenderStep {
	s := &RenderStep{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name for logging.
func (s *RenderStep) Name() string {
	return "render"
}

// Do renders the artifact and records its path on the result.
// The path is recorded before writing so a failed write still reports
// where the artifact was supposed to land.
func (s *RenderStep) Do(_ context.Context, result *model.ScanResult) error {
	path := s.outputPath
	if path == "" {
		path = filepath.Join(result.Root, defaultArtifactDir, defaultArtifactName)
	}
	result.ArtifactPath = path

	if err := report.WriteArtifact(result, path); err != nil {
		return err
	}

	s.logger.Info("artifact written", "path", path)
	return nil
}
