package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/codegenius/codegenius/internal/model"
)

// Step is one stage of a scan: walk, readme probe, extraction, render.
// Steps run in sequence and mutate the shared ScanResult.
//
// Design decision: Steps are an interface instead of plain functions so
// each step can carry its own configuration (ignore dirs, output path,
// language selection) and report a Name() for logging.
type Step interface {
	// Do executes the step against result. An error means the step failed
	// critically; best-effort misses (an unreadable file, a missing
	// README) are absorbed and return nil.
	Do(ctx context.Context, result *model.ScanResult) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs an ordered list of steps against one scan root.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later steps running after a failure instead
	// of stopping at the first error.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing steps
// after one fails. The failure is still logged and recorded in the result.
//
// Design decision: The default is to stop on error because every later
// step depends on the walk's buckets; a failed walk leaves nothing for
// extraction or rendering to work with.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline; add stages with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in order against result.
//
// Cancellation is checked between steps, not during them; long-running
// steps watch the context themselves. A cancelled pipeline records the
// context error in the result before returning it.
//
// Returns the first step error when continueOnError is false, nil
// otherwise (errors are still recorded in the result).
func (p *Pipeline) Execute(ctx context.Context, result *model.ScanResult) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			result.ErrorMessage = err.Error()
			return err
		}

		err := p.runStep(ctx, step, result)
		result.PerformedSteps = append(result.PerformedSteps, step.Name())

		if err != nil {
			result.ErrorMessage = err.Error()
			if !p.continueOnError {
				return err
			}
		}
	}

	return nil
}

// runStep executes a single step with timing and logging around it.
func (p *Pipeline) runStep(ctx context.Context, step Step, result *model.ScanResult) error {
	p.logger.Info("executing step",
		"step", step.Name(),
		"root", result.Root,
	)

	start := time.Now()
	err := step.Do(ctx, result)
	elapsed := time.Since(start)

	if err != nil {
		p.logger.Error("step failed",
			"step", step.Name(),
			"root", result.Root,
			"elapsed", elapsed,
			"error", err,
		)
		return err
	}

	p.logger.Debug("step completed",
		"step", step.Name(),
		"root", result.Root,
		"elapsed", elapsed,
	)
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
