package rendering

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillscan/internal/classify"
	"github.com/jonathan/skillscan/internal/types"
)

func TestSplitEmphasis(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{"plain", "no emphasis", []Span{{Text: "no emphasis"}}},
		{"empty", "", []Span{}},
		{"middle", "a **b** c", []Span{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c"}}},
		{"adjacent", "**a****b**", []Span{{Text: "a", Bold: true}, {Text: "b", Bold: true}}},
		{"pairs left to right", "**x** and **y**", []Span{{Text: "x", Bold: true}, {Text: " and "}, {Text: "y", Bold: true}}},
		{"unpaired marker stays", "5 ** 2", []Span{{Text: "5 ** 2"}}},
		{"empty bold", "****", []Span{{Text: "", Bold: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitEmphasis(tt.text)); diff != "" {
				t.Errorf("SplitEmphasis(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestParseAnalysisLine(t *testing.T) {
	assert.Equal(t, AnalysisLine{Kind: AnalysisHeading, Text: "Quick Scan"}, ParseAnalysisLine("## Quick Scan"))
	assert.Equal(t,
		AnalysisLine{Kind: AnalysisSection, Number: 4, Text: "Overall ATS Score (out of 100): 72"},
		ParseAnalysisLine("**4. Overall ATS Score (out of 100): 72**"))

	text := ParseAnalysisLine("Strong **Go** skills")
	assert.Equal(t, AnalysisText, text.Kind)
	assert.Len(t, text.Spans, 3)
}

func TestParseAnalysis(t *testing.T) {
	assert.Empty(t, ParseAnalysis(""))
	assert.Len(t, ParseAnalysis("a\n\nb"), 3)
}

func TestHTML_StudyPlan(t *testing.T) {
	blocks := classify.Classify("## Plan\nWeek 2: Trees & Graphs\nKey Topics: BFS\nResources:\n• LeetCode: Number of Islands\n• <script>x</script>\n3. Clone Graph\n\nfree")

	html, err := HTML(blocks)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<div class="study-plan">`))
	assert.Contains(t, html, "<h2>Plan</h2>")
	assert.Contains(t, html, `<span class="week-number">Week 2</span> Trees &amp; Graphs`)
	assert.Contains(t, html, "<strong>Key Topics:</strong> BFS")
	assert.Contains(t, html, "<h4>Resources</h4>")
	assert.Contains(t, html, `<li class="resource resource-LeetCode"><span class="resource-kind">LeetCode</span> Number of Islands</li>`)
	assert.Contains(t, html, "<li>&lt;script&gt;x&lt;/script&gt;</li>")
	assert.Contains(t, html, `<li class="numbered" value="3">Clone Graph</li>`)
	assert.Contains(t, html, "<br>")
	assert.Contains(t, html, "<p>free</p>")
	assert.NotContains(t, html, "<script>")
}

func TestHTML_Empty(t *testing.T) {
	html, err := HTML([]types.Block{})
	require.NoError(t, err)
	assert.Equal(t, "<div class=\"study-plan\">\n</div>", html)
}

func TestAnalysisHTML(t *testing.T) {
	html, err := AnalysisHTML("## Report\n**1. Overall ATS Score (out of 100): 72**\nUse **metrics** <b>now</b>")
	require.NoError(t, err)

	assert.Contains(t, html, "<h2>Report</h2>")
	assert.Contains(t, html, `<span class="section-number">1</span> Overall ATS Score (out of 100): 72`)
	assert.Contains(t, html, "<p>Use <strong>metrics</strong> &lt;b&gt;now&lt;/b&gt;</p>")
}

func TestTerminal(t *testing.T) {
	out := Terminal([]types.Block{
		types.Heading("Plan"),
		types.WeekHeader(1, "Arrays"),
		types.ResourceItem(types.ResourceBook, "CLRS"),
		types.NumberedItem(2, "Two Sum"),
		types.Blank(),
		types.Paragraph("tail"),
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Plan")
	assert.Contains(t, lines[1], "Week 1")
	assert.Contains(t, lines[1], "Arrays")
	assert.Contains(t, lines[2], "[Book]")
	assert.Contains(t, lines[3], "2. Two Sum")
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "tail", lines[5])
}

func TestTerminalAnalysis(t *testing.T) {
	out := TerminalAnalysis("**2. Strengths**\nclear **impact**")
	assert.Contains(t, out, "Strengths")
	assert.Contains(t, out, "impact")
	assert.NotContains(t, out, "**")
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, Accent, ScoreColor(80))
	assert.Equal(t, Warning, ScoreColor(60))
	assert.Equal(t, Danger, ScoreColor(59))
}

func TestTerminalScores(t *testing.T) {
	out := TerminalScores(types.ScoreBundle{Overall: 72, Relevance: 70, KeywordsMatch: 81, SkillsMatch: 5})
	assert.Contains(t, out, "Overall ATS Score")
	assert.Contains(t, out, " 72/100")
	assert.Contains(t, out, "  5/100")
	assert.Len(t, strings.Split(out, "\n"), 4)
}
