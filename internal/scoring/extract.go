// Package scoring extracts the overall ATS score from a generated resume
// analysis and derives the relevance, keyword and skills sub-scores from it.
package scoring

import (
	"regexp"
	"strconv"

	"github.com/jonathan/skillscan/internal/types"
)

// DefaultOverallScore is returned when a report carries no score line.
const DefaultOverallScore = 0

// overallScorePattern matches "**<n>. Overall ATS Score (out of 100): <score>**".
// The leading enumeration is ignored; the second digit group is the score.
var overallScorePattern = regexp.MustCompile(`\*\*\d+\. Overall ATS Score \(out of 100\): (\d+)\*\*`)

// ExtractOverallScore returns the first overall score found in text, clamped
// to [0, 100], or DefaultOverallScore when the pattern is absent.
// It is deterministic.
func ExtractOverallScore(text string) int {
	m := overallScorePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultOverallScore
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		// only overflow gets here; the digits are far above the range
		return types.MaxScore
	}
	return types.ClampScore(score)
}

// HasOverallScore reports whether text contains a score line at all, which
// lets callers tell a genuine zero from a missing score.
func HasOverallScore(text string) bool {
	return overallScorePattern.MatchString(text)
}
