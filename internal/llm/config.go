// Package llm wraps the text generation service: model tiers, the Gemini
// client and the prompt-driven generator for study plans and analyses.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is the cheapest model, fine for short prompts
	TierLite ModelTier = "lite"
	// TierStandard is used for study plans and analyses by default
	TierStandard ModelTier = "standard"
	// TierAdvanced is the most capable model
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the only supported provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps the score format stable across calls.
const DefaultTemperature float32 = 0.2

// Config holds the model configuration
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// and then the lite model.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}

// ParseTier resolves a configured model setting. A tier name selects that
// tier; anything else is taken as an explicit model name for the standard
// tier. The empty string selects the standard tier unchanged.
func ParseTier(setting string) (ModelTier, string) {
	switch ModelTier(setting) {
	case "":
		return TierStandard, ""
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(setting), ""
	default:
		return TierStandard, setting
	}
}
