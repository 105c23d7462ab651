package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Step is one named write in an ordered sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepError reports which step of a sequence failed. Earlier steps have
// already been applied and are not rolled back.
type StepError struct {
	Saga string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %q failed: %v", e.Saga, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes step sequences best-effort: steps run in order, the
// first failure stops the sequence and is surfaced with its step name.
// There is no compensation: each step is an idempotent field update, so
// the documented recovery is to re-issue the operation (or correct the
// record by hand) once the underlying failure clears.
type Runner struct {
	log *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{log: log}
}

func (r *Runner) Run(ctx context.Context, saga string, steps []Step) error {
	for i, step := range steps {
		if err := step.Run(ctx); err != nil {
			r.log.Warn("saga step failed",
				zap.String("saga", saga),
				zap.String("step", step.Name),
				zap.Int("completedSteps", i),
				zap.Error(err))
			return &StepError{Saga: saga, Step: step.Name, Err: err}
		}
	}
	return nil
}
