package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel_FallbackChain(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))

	// Unknown tier falls back to standard.
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("turbo")))
}

func TestConfigForTier_PinsEveryTier(t *testing.T) {
	cfg := ConfigForTier(TierLite)

	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(tier))
	}
}

func TestConfigForTier_LeavesDefaultUntouched(t *testing.T) {
	_ = ConfigForTier(TierAdvanced)

	assert.Equal(t, "gemini-2.5-flash-lite", DefaultConfig().GetModel(TierLite))
}
