package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/config"
)

func testConfig(baseURL string) config.LLM {
	return config.LLM{
		Provider:      config.ProviderOpenAI,
		Model:         "gpt-4o-mini",
		APIKey:        "sk-test",
		CredentialEnv: "OPENAI_API_KEY",
		BaseURL:       baseURL,
		Temperature:   0.4,
		Timeout:       5 * time.Second,
	}
}

func completionBody(content string) string {
	payload := map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var req struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	var auth string
	var rawBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		var err error
		rawBody, err = io.ReadAll(r.Body)
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody(`{"JD Match": "70%"}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL + "/"))
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "analyze this")

	require.NoError(t, err)
	assert.Equal(t, `{"JD Match": "70%"}`, out)
	assert.Equal(t, "Bearer sk-test", auth)
	require.NoError(t, json.Unmarshal(rawBody, &req))
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, 0.4, req.Temperature)
	assert.Contains(t, string(rawBody), `"temperature":0.4`)
	assert.NotContains(t, string(rawBody), "0.40000")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	require.Len(t, req.Messages[0].Content, 1)
	assert.Equal(t, "text", req.Messages[0].Content[0].Type)
	assert.Equal(t, "analyze this", req.Messages[0].Content[0].Text)
}

func TestCompleteDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL + "/"))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")

	var invErr *llm.InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, "openai", invErr.Provider)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL + "/"))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")

	assert.ErrorIs(t, err, llm.ErrInvocation)
}

func TestNewClientRequiresCredential(t *testing.T) {
	cfg := testConfig("")
	cfg.APIKey = ""

	_, err := NewClient(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is required")
}
