package types

// Score bounds shared by the overall score and every sub-score
const (
	MinScore = 0
	MaxScore = 100
)

// SubScores holds the three scores derived from an overall score
type SubScores struct {
	Relevance     int `json:"relevance"`
	KeywordsMatch int `json:"keywords_match"`
	SkillsMatch   int `json:"skills_match"`
}

// ScoreBundle is the primary score of an analysis report plus its derived sub-scores.
// Every field lies in [MinScore, MaxScore].
type ScoreBundle struct {
	Overall       int `json:"overall"`
	Relevance     int `json:"relevance"`
	KeywordsMatch int `json:"keywords_match"`
	SkillsMatch   int `json:"skills_match"`
}

// NewScoreBundle combines an overall score with its derived sub-scores.
func NewScoreBundle(overall int, sub SubScores) ScoreBundle {
	return ScoreBundle{
		Overall:       overall,
		Relevance:     sub.Relevance,
		KeywordsMatch: sub.KeywordsMatch,
		SkillsMatch:   sub.SkillsMatch,
	}
}

// ClampScore bounds a score into [MinScore, MaxScore].
func ClampScore(score int) int {
	return max(MinScore, min(score, MaxScore))
}
