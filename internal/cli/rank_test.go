package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_Seed(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "", "rank")
	require.NoError(t, err)

	assert.Contains(t, out, "Job Description")
	assert.Contains(t, out, "Cost of Delay")
	assert.Contains(t, out, "1.0000")
	assert.Contains(t, out, "1.6000")
	assert.Contains(t, out, "2.0000")
	assert.Contains(t, out, "Next job: C")
}

func TestRank_JobFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	jobs := writeFile(t, dir, "backlog.yaml", twoJobsYAML)

	out, _, err := execute(t, "", "rank", "--jobs", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "3.0000")
	assert.Contains(t, out, "0.2500")
	assert.Contains(t, out, "Next job: Fix bug")
}

func TestRank_JSON(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "", "rank", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   TableView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "C", resp.Data.NextJob)
	assert.False(t, resp.Data.Empty)
	require.Len(t, resp.Data.Priorities, 3)
	assert.InDelta(t, 1.6, resp.Data.Priorities[1].WSJF, 1e-9)
	assert.Equal(t, 4, resp.Data.Normalization.SizeMin)
	assert.Len(t, resp.Data.Jobs, 3)
}

func TestRank_CUEJobFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	jobs := writeFile(t, dir, "backlog.cue", `jobs: [
	{description: "Fix bug", size: 1, urgency: 2, risk_reduction: 1},
	{description: "Write docs", size: 4, urgency: 1},
]
`)

	out, _, err := execute(t, "", "rank", "--jobs", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "0.2500")
	assert.Contains(t, out, "Next job: Fix bug")
}

func TestRank_EmptyTable(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	jobs := writeFile(t, dir, "empty.yaml", "jobs: []\n")

	out, _, err := execute(t, "", "rank", "--jobs", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "Next job: No jobs")
}

func TestRank_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	invalid := writeFile(t, dir, "invalid.yaml", "jobs:\n  - description: x\n    size: 0\n")
	typo := writeFile(t, dir, "typo.yaml", "jobs:\n  - descripton: x\n    size: 1\n")

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing", dir + "/missing.yaml", "READ_FAILED"},
		{"invalid", invalid, "INVALID_JOBS"},
		{"typo", typo, "PARSE_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", "rank", "--jobs", tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestTop(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	jobs := writeFile(t, dir, "backlog.yaml", twoJobsYAML)
	empty := writeFile(t, dir, "empty.yaml", "jobs: []\n")

	out, _, err := execute(t, "", "top")
	require.NoError(t, err)
	assert.Equal(t, "C\n", out)

	out, _, err = execute(t, "", "top", "--jobs", jobs)
	require.NoError(t, err)
	assert.Equal(t, "Fix bug\n", out)

	out, _, err = execute(t, "", "top", "--jobs", empty)
	require.NoError(t, err)
	assert.Equal(t, "No jobs\n", out)

	out, _, err = execute(t, "", "top", "--jobs", empty, "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"empty":true}}`, out)
}
