package rendering

import (
	"regexp"
	"strconv"
	"strings"
)

// Span is a run of text, bold or plain.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

var (
	boldPattern    = regexp.MustCompile(`\*\*.*?\*\*`)
	sectionPattern = regexp.MustCompile(`^\*\*(\d+)\.\s*`)
)

// SplitEmphasis splits text into plain and **bold** spans. Markers are
// paired left to right; an unpaired ** stays in the plain text. Empty plain
// spans are dropped.
func SplitEmphasis(text string) []Span {
	spans := []Span{}
	last := 0
	for _, loc := range boldPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// AnalysisLineKind classifies one line of an analysis report
type AnalysisLineKind string

// Analysis line kinds
const (
	AnalysisHeading AnalysisLineKind = "heading"
	AnalysisSection AnalysisLineKind = "section"
	AnalysisText    AnalysisLineKind = "text"
)

// AnalysisLine is one parsed line of an analysis report.
type AnalysisLine struct {
	Kind   AnalysisLineKind
	Number int
	Text   string
	Spans  []Span
}

// ParseAnalysisLine classifies a report line. "## " lines are headings,
// lines opening with "**N." are numbered section titles, and everything
// else is text with emphasis spans.
func ParseAnalysisLine(line string) AnalysisLine {
	if rest, ok := strings.CutPrefix(line, "## "); ok {
		return AnalysisLine{Kind: AnalysisHeading, Text: rest}
	}
	if m := sectionPattern.FindStringSubmatchIndex(line); m != nil {
		number, err := strconv.Atoi(line[m[2]:m[3]])
		if err != nil {
			number = 0
		}
		title := strings.ReplaceAll(line[m[1]:], "**", "")
		return AnalysisLine{Kind: AnalysisSection, Number: number, Text: title}
	}
	return AnalysisLine{Kind: AnalysisText, Text: line, Spans: SplitEmphasis(line)}
}

// ParseAnalysis parses every line of a report.
func ParseAnalysis(text string) []AnalysisLine {
	if text == "" {
		return []AnalysisLine{}
	}
	lines := strings.Split(text, "\n")
	parsed := make([]AnalysisLine, len(lines))
	for i, line := range lines {
		parsed[i] = ParseAnalysisLine(line)
	}
	return parsed
}
