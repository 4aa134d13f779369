package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestRunAccumulatesContextInOrder(t *testing.T) {
	var order []string
	steps := []Step{
		{Name: "search", Run: func(_ context.Context, sc Context) (interface{}, error) {
			order = append(order, "search")
			return []string{"row"}, nil
		}},
		{Name: "analyze", Run: func(_ context.Context, sc Context) (interface{}, error) {
			order = append(order, "analyze")
			rows, ok := sc["search"].([]string)
			if !ok || len(rows) != 1 {
				t.Fatalf("prior step result not visible: %+v", sc)
			}
			return "profile", nil
		}},
	}

	sc, err := NewRunner(0, nil).Run(context.Background(), steps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(order) != 2 || order[0] != "search" || order[1] != "analyze" {
		t.Fatalf("steps ran out of order: %v", order)
	}
	if sc["analyze"] != "profile" {
		t.Fatalf("missing step result: %+v", sc)
	}
}

func TestRunRetryLawEventuallySucceeds(t *testing.T) {
	const failures = 2
	attempts := 0
	var events []Event
	steps := []Step{
		{Name: "flaky", Run: func(context.Context, Context) (interface{}, error) {
			attempts++
			if attempts <= failures {
				return nil, errors.New("transient")
			}
			return 42, nil
		}},
	}

	r := NewRunner(failures, func(ev Event) { events = append(events, ev) })
	sc, err := r.Run(context.Background(), steps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sc["flaky"] != 42 {
		t.Fatalf("missing result: %+v", sc)
	}

	// exactly f step_err events then one step_ok
	if len(events) != failures+1 {
		t.Fatalf("expected %d events, got %d: %+v", failures+1, len(events), events)
	}
	for i := 0; i < failures; i++ {
		if events[i].Type != EventStepErr {
			t.Fatalf("event %d: expected step_err, got %s", i, events[i].Type)
		}
		if events[i].Attempt != i+1 {
			t.Fatalf("event %d: expected attempt %d, got %d", i, i+1, events[i].Attempt)
		}
	}
	if last := events[len(events)-1]; last.Type != EventStepOK || last.Step != "flaky" {
		t.Fatalf("expected final step_ok, got %+v", last)
	}
}

func TestRunExhaustedBudgetAbortsWithNoContext(t *testing.T) {
	boom := errors.New("persistent")
	steps := []Step{
		{Name: "first", Run: func(context.Context, Context) (interface{}, error) { return "ok", nil }},
		{Name: "broken", Run: func(context.Context, Context) (interface{}, error) { return nil, boom }},
		{Name: "after", Run: func(context.Context, Context) (interface{}, error) {
			t.Fatal("step after a failed one must not run")
			return nil, nil
		}},
	}

	sc, err := NewRunner(1, nil).Run(context.Background(), steps)
	if sc != nil {
		t.Fatalf("no partial context may be returned, got %+v", sc)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if stepErr.Step != "broken" || stepErr.Attempts != 2 {
		t.Fatalf("unexpected diagnostics: %+v", stepErr)
	}
	if !errors.Is(err, boom) {
		t.Fatal("underlying error must be wrapped")
	}
}

func TestRunZeroRetriesFailsOnFirstError(t *testing.T) {
	var events []Event
	steps := []Step{
		{Name: "once", Run: func(context.Context, Context) (interface{}, error) {
			return nil, errors.New("nope")
		}},
	}

	_, err := NewRunner(0, func(ev Event) { events = append(events, ev) }).Run(context.Background(), steps)
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(events) != 1 || events[0].Type != EventStepErr || events[0].Attempt != 1 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestRunEmptyStepsYieldsEmptyContext(t *testing.T) {
	sc, err := NewRunner(0, nil).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sc) != 0 {
		t.Fatalf("expected empty context, got %+v", sc)
	}
}
