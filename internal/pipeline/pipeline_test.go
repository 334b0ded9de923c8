package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/codegenius/codegenius/internal/model"
)

// recordingStep is a test double that records whether it ran and can be
// configured to fail.
type recordingStep struct {
	name string
	err  error
	ran  bool
}

func (s *recordingStep) Do(_ context.Context, _ *model.ScanResult) error {
	s.ran = true
	return s.err
}

func (s *recordingStep) Name() string {
	return s.name
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		first := &recordingStep{name: "first"}
		second := &recordingStep{name: "second"}

		p := New(WithLogger(slog.Default()))
		p.AddSteps(first, second)

		result := model.NewScanResult(t.TempDir())
		if err := p.Execute(context.Background(), result); err != nil {
			t.Fatalf("Execute() error = %v, want nil", err)
		}

		if !first.ran || !second.ran {
			t.Errorf("steps ran = (%v, %v), want both true", first.ran, second.ran)
		}
		want := []string{"first", "second"}
		if len(result.PerformedSteps) != len(want) {
			t.Fatalf("PerformedSteps = %v, want %v", result.PerformedSteps, want)
		}
		for i, name := range want {
			if result.PerformedSteps[i] != name {
				t.Errorf("PerformedSteps[%d] = %q, want %q", i, result.PerformedSteps[i], name)
			}
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("walk exploded")
		failing := &recordingStep{name: "failing", err: wantErr}
		after := &recordingStep{name: "after"}

		p := New(WithLogger(slog.Default()))
		p.AddSteps(failing, after)

		result := model.NewScanResult(t.TempDir())
		if err := p.Execute(context.Background(), result); !errors.Is(err, wantErr) {
			t.Fatalf("Execute() error = %v, want %v", err, wantErr)
		}

		if after.ran {
			t.Error("step after failure ran, want pipeline to stop")
		}
		if result.ErrorMessage != wantErr.Error() {
			t.Errorf("ErrorMessage = %q, want %q", result.ErrorMessage, wantErr.Error())
		}
	})

	t.Run("continues past errors when configured", func(t *testing.T) {
		t.Parallel()

		failing := &recordingStep{name: "failing", err: errors.New("boom")}
		after := &recordingStep{name: "after"}

		p := New(
			WithLogger(slog.Default()),
			WithContinueOnError(true),
		)
		p.AddSteps(failing, after)

		result := model.NewScanResult(t.TempDir())
		if err := p.Execute(context.Background(), result); err != nil {
			t.Fatalf("Execute() error = %v, want nil with continueOnError", err)
		}

		if !after.ran {
			t.Error("step after failure did not run with continueOnError")
		}
		if result.ErrorMessage == "" {
			t.Error("ErrorMessage is empty, want recorded failure")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		step := &recordingStep{name: "never"}
		p := New(WithLogger(slog.Default()))
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := model.NewScanResult(t.TempDir())
		if err := p.Execute(ctx, result); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if step.ran {
			t.Error("step ran despite cancelled context")
		}
		if result.ErrorMessage == "" {
			t.Error("ErrorMessage is empty, want cancellation recorded")
		}
	})
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New(WithLogger(slog.Default()))
	if p.StepCount() != 0 {
		t.Fatalf("StepCount() = %d, want 0", p.StepCount())
	}

	p.AddStep(&recordingStep{name: "walk"})
	p.AddStep(&recordingStep{name: "render"})

	if p.StepCount() != 2 {
		t.Errorf("StepCount() = %d, want 2", p.StepCount())
	}
	names := p.StepNames()
	if len(names) != 2 || names[0] != "walk" || names[1] != "render" {
		t.Errorf("StepNames() = %v, want [walk render]", names)
	}
}
