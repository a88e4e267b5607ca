package harness

import (
	"fmt"
	"strings"
)

// AssertionError is a failed assertion with enough context to debug it.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nSteps:\n")
		for _, ev := range e.Trace {
			status := "applied"
			if !ev.Applied {
				status = ev.Code
			}
			if ev.Kind == "edit" {
				fmt.Fprintf(&buf, "  [%d] edit row=%d %s=%q %s\n", ev.Seq, ev.Row, ev.Column, ev.Raw, status)
			} else {
				fmt.Fprintf(&buf, "  [%d] %s %s\n", ev.Seq, ev.Kind, status)
			}
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var msgs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			msgs = append(msgs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return msgs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertTopJob:
		return assertTopJob(result, a)
	case AssertWSJF:
		return assertWSJF(result, a)
	case AssertRow:
		return assertRow(result, a)
	case AssertRowCount:
		return assertRowCount(result, a)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func assertTopJob(result *Result, a Assertion) error {
	if a.Error != "" {
		if result.TopJobCode != a.Error {
			return failure(result, a.Type, a.Error, describeTop(result))
		}
		return nil
	}
	if result.TopJobCode != "" || result.TopJob != a.Value {
		return failure(result, a.Type, fmt.Sprintf("%q", a.Value), describeTop(result))
	}
	return nil
}

func describeTop(result *Result) string {
	if result.TopJobCode != "" {
		return result.TopJobCode
	}
	return fmt.Sprintf("%q", result.TopJob)
}

func assertWSJF(result *Result, a Assertion) error {
	if a.Row < 0 || a.Row >= len(result.Priorities) {
		return failure(result, a.Type, fmt.Sprintf("row %d", a.Row),
			fmt.Sprintf("%d row(s)", len(result.Priorities)))
	}
	p := result.Priorities[a.Row]
	if p.WSJF != a.Value || p.Undefined != a.Undefined {
		return failure(result, a.Type,
			fmt.Sprintf("row %d wsjf=%s undefined=%t", a.Row, a.Value, a.Undefined),
			fmt.Sprintf("row %d wsjf=%s undefined=%t", a.Row, p.WSJF, p.Undefined))
	}
	return nil
}

func assertRow(result *Result, a Assertion) error {
	rows := rowsOf(result)
	if a.Row < 0 || a.Row >= len(rows) {
		return failure(result, a.Type, fmt.Sprintf("row %d", a.Row), fmt.Sprintf("%d row(s)", len(rows)))
	}
	if rows[a.Row] != *a.Job {
		return failure(result, a.Type, fmt.Sprintf("%+v", *a.Job), fmt.Sprintf("%+v", rows[a.Row]))
	}
	return nil
}

func assertRowCount(result *Result, a Assertion) error {
	if n := len(rowsOf(result)); n != a.Count {
		return failure(result, a.Type, fmt.Sprintf("%d row(s)", a.Count), fmt.Sprintf("%d row(s)", n))
	}
	return nil
}

func failure(result *Result, typ, expected, actual string) *AssertionError {
	return &AssertionError{
		Type:     typ,
		Expected: expected,
		Actual:   actual,
		Trace:    result.Trace,
	}
}
