package health

import "ats-analyzer/internal/shared/config"

// Service reports process readiness for the health endpoint.
type Service struct {
	llm config.LLM
}

// NewService constructs a new health service.
func NewService(llm config.LLM) *Service {
	return &Service{llm: llm}
}

// Status returns the health payload. The process is healthy without a
// credential; "configured" tells operators analyses will be refused.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":         true,
		"provider":   s.llm.Provider,
		"model":      s.llm.Model,
		"configured": s.llm.HasCredential(),
	}
}
