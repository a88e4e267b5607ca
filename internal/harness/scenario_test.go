package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wsjf/internal/job"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_Full(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/scenario-b-format-error.yaml")
	require.NoError(t, err)

	assert.Equal(t, "scenario-b-format-error", s.Name)
	require.NotNil(t, s.Jobs)
	assert.Len(t, *s.Jobs, 2)
	require.Len(t, s.Steps, 1)
	require.NotNil(t, s.Steps[0].Edit)
	assert.Equal(t, "Size", s.Steps[0].Edit.Column)
	assert.Equal(t, "abc", s.Steps[0].Edit.Value)
	assert.Equal(t, "FORMAT_ERROR", s.Steps[0].Expect.Error)
	require.Len(t, s.Assertions, 2)
	assert.Equal(t, &job.Job{Description: "Fix bug", Size: 1, Urgency: 2, RiskReduction: 1}, s.Assertions[0].Job)
}

func TestLoadScenario_SeedSelection(t *testing.T) {
	absent, err := LoadScenario("testdata/scenarios/seed-edit-reset.yaml")
	require.NoError(t, err)
	assert.Nil(t, absent.Jobs)
	assert.Equal(t, job.Seed(), absent.Seed())

	empty, err := LoadScenario("testdata/scenarios/empty-table.yaml")
	require.NoError(t, err)
	require.NotNil(t, empty.Jobs)
	assert.Empty(t, empty.Seed())
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown field",
			body:    "name: x\ndescription: y\nassertion: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			body:    "description: y\nassertions:\n  - type: row_count\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			body:    "name: x\nassertions:\n  - type: row_count\n",
			wantErr: "description is required",
		},
		{
			name:    "bad append mode",
			body:    "name: x\ndescription: y\nappend_mode: merge\nassertions:\n  - type: row_count\n",
			wantErr: "invalid append mode",
		},
		{
			name:    "no assertions",
			body:    "name: x\ndescription: y\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "empty step",
			body:    "name: x\ndescription: y\nsteps:\n  - expect:\n      error: FORMAT_ERROR\nassertions:\n  - type: row_count\n",
			wantErr: "step 0: exactly one of edit, append or reset",
		},
		{
			name:    "two actions in one step",
			body:    "name: x\ndescription: y\nsteps:\n  - append: true\n    reset: true\nassertions:\n  - type: row_count\n",
			wantErr: "exactly one of",
		},
		{
			name:    "expect without code",
			body:    "name: x\ndescription: y\nsteps:\n  - append: true\n    expect:\n      message: hi\nassertions:\n  - type: row_count\n",
			wantErr: "expect.error is required",
		},
		{
			name:    "unknown assertion",
			body:    "name: x\ndescription: y\nassertions:\n  - type: final_state\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "wsjf without value",
			body:    "name: x\ndescription: y\nassertions:\n  - type: wsjf\n    row: 1\n",
			wantErr: "wsjf requires value",
		},
		{
			name:    "row without job",
			body:    "name: x\ndescription: y\nassertions:\n  - type: row\n",
			wantErr: "row requires job",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
