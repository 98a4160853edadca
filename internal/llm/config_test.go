package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "fallback-model"}}
	assert.Equal(t, "fallback-model", config.GetModel(TierAdvanced))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced), "original unchanged")
	assert.Equal(t, "custom-model", next.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", next.GetModel(TierLite))
	assert.Equal(t, config.Temperature, next.Temperature)
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		setting   string
		wantTier  ModelTier
		wantModel string
	}{
		{"", TierStandard, ""},
		{"lite", TierLite, ""},
		{"advanced", TierAdvanced, ""},
		{"gemini-1.5-flash", TierStandard, "gemini-1.5-flash"},
	}

	for _, tt := range tests {
		tier, model := ParseTier(tt.setting)
		assert.Equal(t, tt.wantTier, tier, tt.setting)
		assert.Equal(t, tt.wantModel, model, tt.setting)
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), nil, "")
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}
