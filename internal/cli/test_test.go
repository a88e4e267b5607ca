package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: two-jobs
description: The cheaper urgent job ranks first.
jobs:
  - description: Fix bug
    size: 1
    urgency: 2
    risk_reduction: 1
  - description: Write docs
    size: 4
    urgency: 1
steps:
  - edit:
      row: 1
      column: Size
      value: "0"
    expect:
      error: RANGE_ERROR
assertions:
  - type: top_job
    value: Fix bug
  - type: wsjf
    row: 1
    value: "0.2500"
`

const failingScenario = `name: wrong-top
description: Asserts the wrong top job.
jobs:
  - description: Fix bug
    size: 1
    urgency: 2
  - description: Write docs
    size: 4
    urgency: 1
steps: []
assertions:
  - type: top_job
    value: Write docs
`

func TestTestCommand_BundledScenarios(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err)
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "", "test", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ scenario-a-ranking")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_NoGolden(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "two-jobs.yaml", passingScenario)

	out, _, err := execute(t, "", "test", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ two-jobs")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.NoFileExists(t, filepath.Join(dir, "golden", "two-jobs.golden"))
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "two-jobs.yaml", passingScenario)
	golden := filepath.Join(dir, "golden", "two-jobs.golden")

	out, _, err := execute(t, "", "test", dir, "--update")
	require.NoError(t, err, out)
	assert.Contains(t, out, "(golden updated)")
	require.FileExists(t, golden)

	out, _, err = execute(t, "", "test", dir)
	require.NoError(t, err, out)

	require.NoError(t, os.WriteFile(golden, []byte(`{"stale":true}`), 0o644))
	out, _, err = execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "snapshot does not match golden file")
}

func TestTestCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "wrong-top.yaml", failingScenario)

	out, _, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong-top")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommand_InvalidScenarioFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "broken.yaml", "name: broken\nunknown_key: 1\n")

	out, _, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "two-jobs.yaml", passingScenario)
	writeFile(t, dir, "wrong-top.yaml", failingScenario)

	out, _, err := execute(t, "", "test", dir, "--filter", "two-*")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "wrong-top")
}

func TestTestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "two-jobs.yaml", passingScenario)
	writeFile(t, dir, "wrong-top.yaml", failingScenario)

	out, _, err := execute(t, "", "test", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTestCommand_DirectoryErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := execute(t, "", "test", filepath.Join(dir, "absent"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	out, _, err := execute(t, "", "test", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "a.golden"),
		goldenFilePath(filepath.Join("scenarios", "a.yaml")))
}
