package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillscan/internal/types"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestGenerator_StudyPlan(t *testing.T) {
	client := &fakeClient{response: "## 4-Week Plan\nWeek 1: Arrays"}
	g := NewGenerator(client, WithTier(TierAdvanced))

	plan, err := g.StudyPlan(context.Background(), " Backend Engineer ", 4)
	require.NoError(t, err)
	assert.Equal(t, "## 4-Week Plan\nWeek 1: Arrays", plan)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "4-week structured interview preparation plan for a Backend Engineer")
	assert.Equal(t, []ModelTier{TierAdvanced}, client.tiers)
}

func TestGenerator_StudyPlan_InvalidInput(t *testing.T) {
	client := &fakeClient{response: "unused"}
	g := NewGenerator(client)

	tests := []struct {
		name  string
		role  string
		weeks int
	}{
		{"blank role", "   ", 4},
		{"zero weeks", "SDE", 0},
		{"too many weeks", "SDE", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.StudyPlan(context.Background(), tt.role, tt.weeks)
			var invalid *types.InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
	assert.Empty(t, client.prompts, "invalid input never reaches the client")
}

func TestGenerator_Analysis_PromptVariant(t *testing.T) {
	tests := []struct {
		name           string
		analysisType   types.AnalysisType
		jobDescription string
		wantSnippet    string
	}{
		{"quick scan", types.AnalysisQuickScan, "", "**4. Overall ATS Score"},
		{"quick scan with job", types.AnalysisQuickScan, "Go backend", "Job description: Go backend"},
		{"detailed", types.AnalysisDetailed, "", "Rate Impact, Brevity"},
		{"ats with job", types.AnalysisATSOptimization, "SRE", "keywords from the job description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: "**1. Overall ATS Score (out of 100): 70**"}
			g := NewGenerator(client)

			text, err := g.Analysis(context.Background(), "resume body", tt.jobDescription, tt.analysisType)
			require.NoError(t, err)
			assert.Equal(t, client.response, text)
			assert.Contains(t, client.prompts[0], tt.wantSnippet)
			assert.Contains(t, client.prompts[0], "Resume text: resume body")
		})
	}
}

func TestGenerator_Analysis_InvalidInput(t *testing.T) {
	g := NewGenerator(&fakeClient{})

	_, err := g.Analysis(context.Background(), "", "", types.AnalysisQuickScan)
	var invalid *types.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, err = g.Analysis(context.Background(), "resume", "", "Deep Dive")
	assert.ErrorAs(t, err, &invalid)
}

func TestGenerator_UpstreamFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	g := NewGenerator(&fakeClient{err: cause})

	_, err := g.StudyPlan(context.Background(), "SDE", 2)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to generate study plan")
}

func TestGenerator_EmptyResponse(t *testing.T) {
	g := NewGenerator(&fakeClient{response: "  \n"})

	_, err := g.Analysis(context.Background(), "resume", "", types.AnalysisDetailed)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "empty analysis")
}

func TestAnalysisPromptKey(t *testing.T) {
	key, err := AnalysisPromptKey(types.AnalysisATSOptimization, true)
	require.NoError(t, err)
	assert.Equal(t, "ats-optimization-with-job", key)

	key, err = AnalysisPromptKey(types.AnalysisDetailed, false)
	require.NoError(t, err)
	assert.Equal(t, "detailed", key)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Week 1: Arrays\n", "Week 1: Arrays\n"},
		{"bare fence", "```\nWeek 1: Arrays\n```", "Week 1: Arrays"},
		{"language tag", "```text\nWeek 1: Arrays\n```", "Week 1: Arrays"},
		{"first line kept when not a tag", "``` Week 1: Arrays\nKey Topics: Heaps\n```", "Week 1: Arrays\nKey Topics: Heaps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}
