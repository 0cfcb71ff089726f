package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/config"
)

const providerName = "gemini"

// Client implements llm.Completer using the Gemini API.
type Client struct {
	cfg    config.LLM
	models *genai.Models
}

// NewClient constructs a Gemini client. No network I/O happens here.
func NewClient(ctx context.Context, cfg config.LLM) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	if !cfg.HasCredential() {
		return nil, fmt.Errorf("%s is required", credentialName(cfg))
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{cfg: cfg, models: client.Models}, nil
}

// Complete returns the raw text of the first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := llm.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	temperature := float32(c.cfg.Temperature)
	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", llm.WrapInvocation(providerName, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", llm.WrapInvocation(providerName, errors.New("response missing candidates"))
	}

	content := strings.TrimSpace(resp.Text())
	if content == "" {
		return "", llm.WrapInvocation(providerName, llm.ErrEmptyResponse)
	}
	return content, nil
}

func credentialName(cfg config.LLM) string {
	if cfg.CredentialEnv != "" {
		return cfg.CredentialEnv
	}
	return "GOOGLE_API_KEY"
}

var _ llm.Completer = (*Client)(nil)
