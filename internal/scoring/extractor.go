package scoring

import (
	"github.com/jonathan/skillscan/internal/types"
)

// Band is the display band of a score
type Band string

// Score bands, matching the colours of the result view
const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Band thresholds
const (
	HighThreshold   = 80
	MediumThreshold = 60
)

// BandFor maps a score to its display band.
func BandFor(score int) Band {
	switch {
	case score >= HighThreshold:
		return BandHigh
	case score >= MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// Bands returns the band of every score in a bundle, keyed by its JSON name.
func Bands(b types.ScoreBundle) map[string]string {
	return map[string]string{
		"overall":        string(BandFor(b.Overall)),
		"relevance":      string(BandFor(b.Relevance)),
		"keywords_match": string(BandFor(b.KeywordsMatch)),
		"skills_match":   string(BandFor(b.SkillsMatch)),
	}
}

// Extractor produces score bundles with a fixed jitter policy and source.
// An Extractor is as safe for concurrent use as its RandomSource, which for
// *rand.Rand means not at all: build one per request.
type Extractor struct {
	policy JitterPolicy
	rng    RandomSource
}

// Option configures an Extractor
type Option func(*Extractor)

// WithPolicy sets the jitter policy.
func WithPolicy(p JitterPolicy) Option {
	return func(e *Extractor) {
		e.policy = p
	}
}

// WithSource sets the random source.
func WithSource(rng RandomSource) Option {
	return func(e *Extractor) {
		e.rng = rng
	}
}

// NewExtractor creates an Extractor. Without options it uses the additive
// policy and a freshly seeded source.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{policy: DefaultPolicy}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandomSource()
	}
	if e.policy == "" {
		e.policy = DefaultPolicy
	}
	return e
}

// Policy returns the configured jitter policy.
func (e *Extractor) Policy() JitterPolicy {
	return e.policy
}

// Score extracts the overall score from text and derives a fresh bundle.
func (e *Extractor) Score(text string) types.ScoreBundle {
	overall := ExtractOverallScore(text)
	return types.NewScoreBundle(overall, DeriveSubScores(overall, e.policy, e.rng))
}

// ScoreBytes validates raw bytes before scoring them. It fails only with
// *types.InvalidInputError.
func (e *Extractor) ScoreBytes(data []byte) (types.ScoreBundle, error) {
	doc, err := types.NewRawDocument(data)
	if err != nil {
		return types.ScoreBundle{}, err
	}
	return e.Score(doc.String()), nil
}
