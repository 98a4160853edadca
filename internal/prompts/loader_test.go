package prompts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(StudyPlanFile, "study-plan")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Weeks}}-week")
	assert.Contains(t, prompt, "{{.Role}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(AnalysisFile, "nonexistent-key")
	assert.ErrorContains(t, err, "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet(AnalysisFile, "quick-scan")) })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"fills placeholders", "Plan for {{.Role}} over {{.Weeks}} weeks", map[string]string{"Role": "SDE", "Weeks": "4"}, "Plan for SDE over 4 weeks"},
		{"repeated placeholder", "{{.A}}{{.A}}", map[string]string{"A": "x"}, "xx"},
		{"no placeholders", "plain", map[string]string{"Key": "Value"}, "plain"},
		{"missing value kept", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"values are not re-expanded", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "no"}, "{{.B}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(AnalysisFile, "detailed-with-job", map[string]string{
		"ResumeText":     "Go engineer, 5 years",
		"JobDescription": "Backend role",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Resume text: Go engineer, 5 years")
	assert.Contains(t, prompt, "Job description: Backend role")
	assert.NotContains(t, prompt, "{{.")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(AnalysisFile)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ats-optimization", "ats-optimization-with-job",
		"detailed", "detailed-with-job",
		"quick-scan", "quick-scan-with-job",
	}, keys)
}

// Every analysis prompt must ask for the exact score title the score
// extractor looks for.
func TestAnalysisPrompts_AskForScoreTitle(t *testing.T) {
	ClearCache()
	title := regexp.MustCompile(`\*\*\d+\. Overall ATS Score \(out of 100\): score\*\*`)

	keys, err := List(AnalysisFile)
	require.NoError(t, err)
	for _, key := range keys {
		prompt := MustGet(AnalysisFile, key)
		assert.Regexp(t, title, prompt, key)
	}
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get(StudyPlanFile, "study-plan")
	require.NoError(t, err)
	second, err := Get(StudyPlanFile, "study-plan")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
