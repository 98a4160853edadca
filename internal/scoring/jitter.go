package scoring

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/jonathan/skillscan/internal/types"
)

// JitterPolicy selects how sub-scores are derived from the overall score
type JitterPolicy string

// Supported jitter policies
const (
	// PolicyAdditive draws uniformly from [overall-10, overall+10], bounded to [0, 100]
	PolicyAdditive JitterPolicy = "additive"
	// PolicyMultiplicative computes round(overall * u) with u uniform in [0.95, 1.05]
	PolicyMultiplicative JitterPolicy = "multiplicative"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicyAdditive

const (
	additiveSpread     = 10
	multiplicativeLow  = 0.95
	multiplicativeHigh = 1.05
)

// RandomSource is the uniform generator sub-score derivation draws from.
// *rand.Rand from math/rand/v2 satisfies it. Implementations need not be
// safe for concurrent use; give each caller its own source.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// NewSource returns a reproducible source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a source seeded from the runtime's entropy.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ParsePolicy parses a policy name. The empty string selects DefaultPolicy.
func ParsePolicy(name string) (JitterPolicy, error) {
	switch JitterPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultPolicy, nil
	case PolicyAdditive:
		return PolicyAdditive, nil
	case PolicyMultiplicative:
		return PolicyMultiplicative, nil
	default:
		return "", fmt.Errorf("unknown jitter policy %q (want %q or %q)", name, PolicyAdditive, PolicyMultiplicative)
	}
}

// Jitter returns one randomized score near overall. overall is clamped to
// [0, 100] first and the result always lies in [0, 100].
func Jitter(overall int, policy JitterPolicy, rng RandomSource) int {
	base := types.ClampScore(overall)
	switch policy {
	case PolicyMultiplicative:
		u := multiplicativeLow + rng.Float64()*(multiplicativeHigh-multiplicativeLow)
		return types.ClampScore(int(math.Round(float64(base) * u)))
	default:
		lo := max(base-additiveSpread, types.MinScore)
		hi := min(base+additiveSpread, types.MaxScore)
		return types.ClampScore(lo + rng.IntN(hi-lo+1))
	}
}

// DeriveSubScores draws the three sub-scores independently from rng.
func DeriveSubScores(overall int, policy JitterPolicy, rng RandomSource) types.SubScores {
	return types.SubScores{
		Relevance:     Jitter(overall, policy, rng),
		KeywordsMatch: Jitter(overall, policy, rng),
		SkillsMatch:   Jitter(overall, policy, rng),
	}
}
