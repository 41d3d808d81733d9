package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// fakeStep records whether it ran and optionally fails.
type fakeStep struct {
	name string
	err  error
	ran  bool
}

func (s *fakeStep) Do(_ context.Context, _ *model.ThreadReport) error {
	s.ran = true
	return s.err
}

func (s *fakeStep) Name() string { return s.name }

// TestPipelineExecute covers step ordering, error handling, and
// cancellation.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("steps run in order and are recorded", func(t *testing.T) {
		t.Parallel()
		first := &fakeStep{name: "first"}
		second := &fakeStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		report := model.NewThreadReport("https://uwmc.de/threads/x.1/", "dir")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !first.ran || !second.ran {
			t.Error("expected both steps to run")
		}
		if len(report.PerformedSteps) != 2 || report.PerformedSteps[0] != "first" || report.PerformedSteps[1] != "second" {
			t.Errorf("unexpected performed steps %v", report.PerformedSteps)
		}
	})

	t.Run("failure stops the pipeline by default", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := &fakeStep{name: "failing", err: boom}
		after := &fakeStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		report := model.NewThreadReport("https://uwmc.de/threads/x.1/", "dir")
		if err := p.Execute(context.Background(), report); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if after.ran {
			t.Error("expected pipeline to stop before the second step")
		}
	})

	t.Run("continue-on-error keeps going", func(t *testing.T) {
		t.Parallel()
		failing := &fakeStep{name: "failing", err: errors.New("boom")}
		after := &fakeStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddSteps(failing, after)

		report := model.NewThreadReport("https://uwmc.de/threads/x.1/", "dir")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !after.ran {
			t.Error("expected second step to run despite earlier failure")
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()
		step := &fakeStep{name: "never"}

		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report := model.NewThreadReport("https://uwmc.de/threads/x.1/", "dir")
		if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if step.ran {
			t.Error("expected no step to run after cancellation")
		}
	})
}

// TestPipelineStepNames verifies introspection helpers.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(&fakeStep{name: "a"}, &fakeStep{name: "b"})

	if p.StepCount() != 2 {
		t.Errorf("expected 2 steps, got %d", p.StepCount())
	}
	names := p.StepNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected names %v", names)
	}
}
