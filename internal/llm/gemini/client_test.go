package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/config"
)

func testConfig(baseURL string) config.LLM {
	return config.LLM{
		Provider:      config.ProviderGemini,
		Model:         "gemini-2.0-flash",
		APIKey:        "test-key",
		CredentialEnv: "GOOGLE_API_KEY",
		BaseURL:       baseURL,
		Temperature:   0.4,
		Timeout:       5 * time.Second,
	}
}

func candidateBody(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": "STOP",
		}},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestCompleteSendsPromptAndTemperature(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, candidateBody(`{"JD Match": "87"}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), testConfig(srv.URL+"/"))
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "the prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"JD Match": "87"}`, out)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-2.0-flash:generateContent"), gotPath)

	raw, _ := json.Marshal(gotBody)
	assert.Contains(t, string(raw), "the prompt")
	genCfg, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok, "expected generationConfig in request")
	assert.InDelta(t, 0.4, genCfg["temperature"], 0.0001)
}

func TestCompleteProviderErrorIsInvocationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), testConfig(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")

	require.Error(t, err)
	var invErr *llm.InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, "gemini", invErr.Provider)
	assert.False(t, invErr.Timeout)
}

func TestCompleteTimeoutIsRecoverable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := testConfig(srv.URL + "/")
	cfg.Timeout = 50 * time.Millisecond
	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")

	var invErr *llm.InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.True(t, invErr.Timeout)
}

func TestCompleteEmptyTextFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, candidateBody("   "))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), testConfig(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")

	assert.ErrorIs(t, err, llm.ErrInvocation)
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestNewClientRequiresCredential(t *testing.T) {
	cfg := testConfig("")
	cfg.APIKey = " "

	_, err := NewClient(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY is required")
}
