package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-analyzer/internal/shared/config"
)

func baseConfig() config.Config {
	return config.Config{
		Port:             "8080",
		Env:              "dev",
		MaxUploadBytes:   1 << 20,
		ExtractCacheSize: 4,
		LogLevel:         "info",
		LLM: config.LLM{
			Provider:      config.ProviderGemini,
			Model:         "gemini-2.0-flash",
			CredentialEnv: "GOOGLE_API_KEY",
			Temperature:   0.4,
			Timeout:       time.Second,
		},
	}
}

func TestBuildWithoutCredential(t *testing.T) {
	app, err := Build(baseConfig())

	require.NoError(t, err)
	assert.Nil(t, app.Completer)
	require.NotNil(t, app.Router)
	assert.Equal(t, "GOOGLE_API_KEY", app.AnalysisService.CredentialEnv)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBuildWithCredential(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, config.ProviderOpenAI} {
		t.Run(provider, func(t *testing.T) {
			cfg := baseConfig()
			cfg.LLM.Provider = provider
			cfg.LLM.APIKey = "test-key"
			cfg.LLM.BaseURL = "http://127.0.0.1:1/"

			app, err := Build(cfg)

			require.NoError(t, err)
			assert.NotNil(t, app.Completer)
			assert.Equal(t, provider, app.AnalysisService.Provider)
		})
	}
}

func TestBuildUnknownProvider(t *testing.T) {
	cfg := baseConfig()
	cfg.LLM.Provider = "claude-local"

	_, err := Build(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM_PROVIDER")
}
