package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	svc, err := NewEnvServiceFrom("OPENROUTER_API_KEY=sk-test\n")
	require.NoError(t, err)

	cfg, err := svc.Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenRouterAPIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, SearchDuckDuckGo, cfg.SearchProvider)
	assert.Equal(t, "research_output.txt", cfg.SaveFile)
	assert.Equal(t, 15, cfg.MaxSteps)
	assert.Equal(t, 1000, cfg.WikiMaxChars)
	assert.Equal(t, 30*time.Minute, cfg.RunTimeout)
	assert.False(t, cfg.Verbose)
}

func TestLoad_MissingCredential(t *testing.T) {
	svc, err := NewEnvServiceFrom("LLM_PROVIDER=openrouter\n")
	require.NoError(t, err)

	_, err = svc.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoad_AnthropicProvider(t *testing.T) {
	svc, err := NewEnvServiceFrom("LLM_PROVIDER=Anthropic\nANTHROPIC_API_KEY=key\nAGENT_MAX_STEPS=4\n")
	require.NoError(t, err)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.AnthropicModel)
	assert.Equal(t, 4, cfg.MaxSteps)
}

func TestLoad_AnthropicWithoutKey(t *testing.T) {
	svc, err := NewEnvServiceFrom("LLM_PROVIDER=anthropic\nOPENROUTER_API_KEY=unused\n")
	require.NoError(t, err)

	_, err = svc.Load()
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoad_SearchProviderNeedsKey(t *testing.T) {
	svc, err := NewEnvServiceFrom("OPENROUTER_API_KEY=k\nSEARCH_PROVIDER=tavily\n")
	require.NoError(t, err)

	_, err = svc.Load()
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoad_UnknownProvider(t *testing.T) {
	svc, err := NewEnvServiceFrom("LLM_PROVIDER=other\n")
	require.NoError(t, err)

	_, err = svc.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredential)
}

func TestValidate_RejectsZeroSteps(t *testing.T) {
	cfg := Config{
		Provider:         ProviderOpenRouter,
		OpenRouterAPIKey: "k",
		SearchProvider:   SearchDuckDuckGo,
		MaxSteps:         0,
	}
	assert.Error(t, cfg.Validate())
}

func TestParse_SkipsValidation(t *testing.T) {
	svc, err := NewEnvServiceFrom("LLM_PROVIDER= Anthropic \nSEARCH_PROVIDER=TAVILY\n")
	require.NoError(t, err)

	cfg, err := svc.Parse()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, SearchTavily, cfg.SearchProvider)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingCredential)
}
