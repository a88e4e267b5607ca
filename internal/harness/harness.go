package harness

import (
	"context"
	"fmt"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/priority"
	"github.com/roach88/wsjf/internal/session"
)

// SessionIDPrefix is prepended to the scenario name to form the fixed
// session ID of a run.
const SessionIDPrefix = "scenario-"

// Run executes a scenario in a fresh session and returns the result.
//
// Failed step expectations and assertions are reported in the result.
// An error is returned only when the session cannot be started.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	mode, err := session.ParseAppendMode(scenario.AppendMode)
	if err != nil {
		return nil, err
	}

	s, err := session.New(ctx, scenario.Seed(),
		session.WithAppendMode(mode),
		session.WithIDGenerator(session.NewFixedGenerator(SessionIDPrefix+scenario.Name)),
		session.WithLogger(session.DiscardLogger()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer s.Close()

	result := NewResult()
	for i, step := range scenario.Steps {
		out := s.Handle(ctx, stepEvent(step))
		result.Trace = append(result.Trace, traceEvent(out))
		checkStep(i, step, out, result)
	}

	result.Final = s.Rows()
	for _, p := range s.Priorities() {
		result.Priorities = append(result.Priorities, RankedJob{
			Row:         p.Row,
			Description: p.Description,
			WSJF:        priority.FormatScore(p.WSJF),
			Undefined:   p.Undefined,
		})
	}

	top, err := s.TopJob()
	if err != nil {
		result.TopJobCode = string(priority.CodeOf(err))
	} else {
		result.TopJob = top
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func stepEvent(step Step) session.Event {
	switch {
	case step.Edit != nil:
		return session.EditEvent(step.Edit.Row, step.Edit.Column, step.Edit.Value)
	case step.Append:
		return session.Event{Kind: session.EventAppend}
	case step.Reset:
		return session.Event{Kind: session.EventReset}
	}
	return session.Event{}
}

func traceEvent(out session.Outcome) TraceEvent {
	ev := TraceEvent{
		Seq:     out.Seq,
		Kind:    string(out.Event.Kind),
		Row:     -1,
		Applied: out.Applied,
	}
	if out.Event.Kind == session.EventEdit {
		ev.Row = out.Event.Row
		ev.Column = out.Event.Column
		ev.Raw = out.Event.Raw
	}
	if out.Err != nil {
		ev.Code = session.ErrorCode(out.Err)
		ev.Message = out.Err.Error()
	}
	return ev
}

func checkStep(i int, step Step, out session.Outcome, result *Result) {
	kind := out.Event.Kind
	if step.Expect == nil {
		if out.Err != nil {
			result.AddError(fmt.Sprintf("step %d (%s): expected to be applied, got %s: %v",
				i, kind, session.ErrorCode(out.Err), out.Err))
		}
		return
	}

	if out.Err == nil {
		result.AddError(fmt.Sprintf("step %d (%s): expected %s, got applied", i, kind, step.Expect.Error))
		return
	}
	if code := session.ErrorCode(out.Err); code != step.Expect.Error {
		result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s", i, kind, step.Expect.Error, code))
	}
	if step.Expect.Message != "" && step.Expect.Message != out.Err.Error() {
		result.AddError(fmt.Sprintf("step %d (%s): expected message %q, got %q",
			i, kind, step.Expect.Message, out.Err.Error()))
	}
}

// rowsOf returns the final table for assertions.
func rowsOf(result *Result) []job.Job {
	if result.Final == nil {
		return []job.Job{}
	}
	return result.Final
}
