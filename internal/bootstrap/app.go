package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/analyses"
	"ats-analyzer/internal/extract"
	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/llm/gemini"
	"ats-analyzer/internal/llm/openai"
	"ats-analyzer/internal/shared/config"
	"ats-analyzer/internal/shared/server"
	"ats-analyzer/internal/shared/telemetry"
)

// App holds the wired dependencies of one process.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Extractor       *extract.Extractor
	Completer       llm.Completer
	AnalysisService *analyses.Service
	AnalysisHandler *analyses.Handler
}

// Build wires the pipeline and router from cfg.
// A missing credential is not an error here; analysis requests report it instead.
func Build(cfg config.Config) (*App, error) {
	telemetry.SetLevel(cfg.LogLevel)

	completer, err := NewCompleter(context.Background(), cfg.LLM)
	if err != nil {
		return nil, err
	}
	if completer == nil {
		telemetry.Warn("llm.not_configured", map[string]any{
			"provider":       cfg.LLM.Provider,
			"credential_env": cfg.LLM.CredentialEnv,
		})
	}

	extractor := extract.NewExtractor(cfg.ExtractCacheSize)
	svc := &analyses.Service{
		LLM:           completer,
		Extractor:     extractor,
		CredentialEnv: cfg.LLM.CredentialEnv,
		Provider:      cfg.LLM.Provider,
		Model:         cfg.LLM.Model,
	}
	handler := analyses.NewHandler(svc, cfg.MaxUploadBytes)

	return &App{
		Config:          cfg,
		Router:          server.NewRouter(cfg, handler),
		Extractor:       extractor,
		Completer:       completer,
		AnalysisService: svc,
		AnalysisHandler: handler,
	}, nil
}

// NewCompleter returns the instrumented model client for cfg.Provider.
// It returns nil without error when no credential is configured.
func NewCompleter(ctx context.Context, cfg config.LLM) (llm.Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini, config.ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	if !cfg.HasCredential() {
		return nil, nil
	}

	var (
		client llm.Completer
		err    error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client, err = openai.NewClient(cfg)
	default:
		client, err = gemini.NewClient(ctx, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s client: %w", cfg.Provider, err)
	}
	return llm.Instrument(cfg.Provider, cfg.Model, client), nil
}
