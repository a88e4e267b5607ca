package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wsjf/internal/job"
	"github.com/roach88/wsjf/internal/session"
)

// Scenario is a scripted session.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Jobs is the seed table. When the key is absent the built-in seed is
	// used; "jobs: []" starts from an empty table. Seed rows are not
	// validated, so a scenario can start from states no edit could reach.
	Jobs *[]job.Job `yaml:"jobs,omitempty"`

	// AppendMode selects the add-row behavior. Default: preserve.
	AppendMode string `yaml:"append_mode,omitempty"`

	// Steps run in order against one session.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the state after the last step.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one user interaction. Exactly one of Edit, Append and Reset is set.
type Step struct {
	Edit   *EditStep `yaml:"edit,omitempty"`
	Append bool      `yaml:"append,omitempty"`
	Reset  bool      `yaml:"reset,omitempty"`

	// Expect describes a rejection. Without it the step must be applied.
	Expect *Expect `yaml:"expect,omitempty"`
}

// EditStep is a single cell edit.
type EditStep struct {
	Row    int    `yaml:"row"`
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

// Expect is the expected rejection of a step.
type Expect struct {
	// Error is the rejection code, e.g. FORMAT_ERROR.
	Error string `yaml:"error"`

	// Message, when set, must equal the error text shown to the user.
	Message string `yaml:"message,omitempty"`
}

// Assertion checks the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Row addresses the job for wsjf and row assertions.
	Row int `yaml:"row,omitempty"`

	// Value is the expected top job description (top_job) or WSJF rendered
	// with four decimals (wsjf).
	Value string `yaml:"value,omitempty"`

	// Error is the expected top_job error code, e.g. EMPTY_TABLE.
	Error string `yaml:"error,omitempty"`

	// Undefined is the expected undefined flag (wsjf).
	Undefined bool `yaml:"undefined,omitempty"`

	// Job is the expected record (row).
	Job *job.Job `yaml:"job,omitempty"`

	// Count is the expected number of rows (row_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTopJob   = "top_job"
	AssertWSJF     = "wsjf"
	AssertRow      = "row"
	AssertRowCount = "row_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Seed returns the table the scenario starts from.
func (s *Scenario) Seed() []job.Job {
	if s.Jobs == nil {
		return job.Seed()
	}
	return job.Clone(*s.Jobs)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := session.ParseAppendMode(s.AppendMode); err != nil {
		return err
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}

	return nil
}

func validateStep(step Step) error {
	n := 0
	if step.Edit != nil {
		n++
	}
	if step.Append {
		n++
	}
	if step.Reset {
		n++
	}
	if n != 1 {
		return fmt.Errorf("exactly one of edit, append or reset is required")
	}
	if step.Expect != nil && step.Expect.Error == "" {
		return fmt.Errorf("expect.error is required")
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertTopJob:
		if a.Value != "" && a.Error != "" {
			return fmt.Errorf("top_job takes value or error, not both")
		}
	case AssertWSJF:
		if a.Value == "" {
			return fmt.Errorf("wsjf requires value")
		}
	case AssertRow:
		if a.Job == nil {
			return fmt.Errorf("row requires job")
		}
	case AssertRowCount:
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
