package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillscan/internal/types"
)

const report = "## Report\n**1. Overall ATS Score (out of 100): 72**\n**2. Keywords**"

func TestScoreCommand_JSONSeeded(t *testing.T) {
	isolateEnv(t)

	first, _, err := runCLI(t, report, "score", "--format", "json", "--seed", "11")
	require.NoError(t, err)
	second, _, err := runCLI(t, report, "score", "--format", "json", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal([]byte(first), &resp))
	assert.Equal(t, 72, resp.Scores.Overall)
	assert.Equal(t, "medium", resp.Bands["overall"])
	assert.InDelta(t, 72, resp.Scores.SkillsMatch, 10)
}

func TestScoreCommand_Text(t *testing.T) {
	isolateEnv(t)

	out, stderr, err := runCLI(t, report, "score")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall ATS Score")
	assert.Contains(t, out, "72/100")
	assert.Empty(t, stderr)

	out, stderr, err = runCLI(t, "no score", "score")
	require.NoError(t, err)
	assert.Contains(t, out, "  0/100")
	assert.Contains(t, stderr, "no overall ATS score found")
}

func TestScoreCommand_Policy(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, report, "score", "--policy", "gaussian")
	assert.ErrorContains(t, err, "unknown jitter policy")

	t.Setenv("SKILLSCAN_JITTER_POLICY", "multiplicative")
	out, _, err := runCLI(t, "**1. Overall ATS Score (out of 100): 0**", "score", "-f", "json")
	require.NoError(t, err)
	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, types.ScoreBundle{}, resp.Scores)
}

func TestScoreCommand_File(t *testing.T) {
	isolateEnv(t)

	path := writeTemp(t, "report.md", report)
	out, _, err := runCLI(t, "", "score", path, "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"overall": 72`)

	_, _, err = runCLI(t, "", "score", path, path)
	assert.Error(t, err)
}
