// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and future multi-provider support.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: keyword extraction, single-bullet scoring
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: batch scoring, gap analysis, resume parsing
	TierStandard ModelTier = "standard"
	// TierAdvanced is for writing tasks: bullet rewrites, bridging bullets, cover letters
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ConfigForTier returns a config with every tier pinned to the named tier's
// model. Used when the user forces a single tier (--model); requests for any
// tier then resolve to that one model.
func ConfigForTier(tier ModelTier) *Config {
	cfg := DefaultConfig()
	model := cfg.GetModel(tier)
	for t := range cfg.Models {
		cfg.Models[t] = model
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
