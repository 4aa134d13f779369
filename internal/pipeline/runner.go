package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dossier-ai/dossier/internal/telemetry"
)

// Context accumulates step results keyed by step name. It is exclusively
// owned by one Run invocation and never shared across runs.
type Context map[string]interface{}

// StepFunc does the work of one named step. It can read every prior step's
// result through the accumulated context.
type StepFunc func(ctx context.Context, sc Context) (interface{}, error)

// Step pairs a name with its work.
type Step struct {
	Name string
	Run  StepFunc
}

// Event types emitted through the OnEvent callback.
const (
	EventStepOK  = "step_ok"
	EventStepErr = "step_err"
)

// Event describes one step outcome.
type Event struct {
	Type      string
	Step      string
	ElapsedMS int64
	Err       string
	Attempt   int
}

// StepError means a step exhausted its retry budget and aborted the run.
type StepError struct {
	Step     string
	Attempts int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed after %d attempt(s): %v", e.Step, e.Attempts, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes named steps strictly in order, timing each one and
// retrying failures up to the configured budget.
type Runner struct {
	Retries int
	OnEvent func(Event)
	Logger  *log.Logger
}

func NewRunner(retries int, onEvent func(Event)) *Runner {
	if retries < 0 {
		retries = 0
	}
	return &Runner{
		Retries: retries,
		OnEvent: onEvent,
		Logger:  log.New(log.Writer(), "[STEPS] ", log.LstdFlags),
	}
}

func (r *Runner) emit(ev Event) {
	if r.OnEvent != nil {
		r.OnEvent(ev)
	}
}

// Run executes the steps against a fresh context. On success the full
// context is returned; once any step exhausts its budget the run aborts with
// a StepError and no partial context.
func (r *Runner) Run(ctx context.Context, steps []Step) (Context, error) {
	sc := Context{}
	for _, step := range steps {
		attempt := 0
		for {
			start := time.Now()
			result, err := step.Run(ctx, sc)
			elapsed := time.Since(start)
			if err == nil {
				sc[step.Name] = result
				telemetry.StepDuration.WithLabelValues(step.Name).Observe(elapsed.Seconds())
				r.emit(Event{Type: EventStepOK, Step: step.Name, ElapsedMS: elapsed.Milliseconds()})
				break
			}

			attempt++
			r.emit(Event{
				Type:      EventStepErr,
				Step:      step.Name,
				ElapsedMS: elapsed.Milliseconds(),
				Err:       err.Error(),
				Attempt:   attempt,
			})
			if attempt > r.Retries {
				if r.Logger != nil {
					r.Logger.Printf("step %q exhausted retries: %v", step.Name, err)
				}
				return nil, &StepError{Step: step.Name, Attempts: attempt, Err: err}
			}
			telemetry.StepRetries.WithLabelValues(step.Name).Inc()
			if r.Logger != nil {
				r.Logger.Printf("step %q attempt %d failed, retrying: %v", step.Name, attempt, err)
			}
		}
	}
	return sc, nil
}
