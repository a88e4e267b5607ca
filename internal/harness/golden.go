package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/session"
)

// Snapshot is the canonical JSON of a scenario run: the handled steps, the
// final table, the derived scores and the top job. Scores are rendered as
// text because canonical JSON carries no floats.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		m := map[string]any{
			"seq":     ev.Seq,
			"kind":    ev.Kind,
			"applied": ev.Applied,
		}
		if ev.Kind == "edit" {
			m["row"] = ev.Row
			m["column"] = ev.Column
			m["raw"] = ev.Raw
		}
		if ev.Code != "" {
			m["code"] = ev.Code
		}
		trace[i] = m
	}

	priorities := make([]any, len(result.Priorities))
	for i, p := range result.Priorities {
		priorities[i] = map[string]any{
			"row":         p.Row,
			"description": p.Description,
			"wsjf":        p.WSJF,
			"undefined":   p.Undefined,
		}
	}

	mode, err := session.ParseAppendMode(scenario.AppendMode)
	if err != nil {
		return nil, err
	}

	snapshot := map[string]any{
		"scenario_name": scenario.Name,
		"append_mode":   string(mode),
		"trace":         trace,
		"final":         rowsOf(result),
		"priorities":    priorities,
	}
	if result.TopJobCode != "" {
		snapshot["top_job_code"] = result.TopJobCode
	} else {
		snapshot["top_job"] = result.TopJob
	}

	return job.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/scenarios/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/scenarios/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
