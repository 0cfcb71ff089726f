package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/config"
)

const providerName = "openai"

// Client implements llm.Completer against an OpenAI-compatible chat completions endpoint.
type Client struct {
	cfg    config.LLM
	client *openai.Client
}

func NewClient(cfg config.LLM) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if !cfg.HasCredential() {
		name := cfg.CredentialEnv
		if name == "" {
			name = "OPENAI_API_KEY"
		}
		return nil, fmt.Errorf("%s is required", name)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{cfg: cfg, client: openai.NewClient(opts...)}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := llm.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(c.cfg.Model),
		Temperature: openai.F(c.cfg.Temperature),
	})
	if err != nil {
		return "", llm.WrapInvocation(providerName, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", llm.WrapInvocation(providerName, errors.New("response missing choices"))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", llm.WrapInvocation(providerName, llm.ErrEmptyResponse)
	}
	return content, nil
}

var _ llm.Completer = (*Client)(nil)
