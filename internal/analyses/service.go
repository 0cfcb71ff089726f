package analyses

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/telemetry"
)

// TextExtractor turns uploaded document bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Service runs one resume against one job description.
type Service struct {
	// LLM is nil when no credential was configured.
	LLM           llm.Completer
	Extractor     TextExtractor
	CredentialEnv string
	Provider      string
	Model         string
}

// Request carries one submission.
type Request struct {
	JobDescription string
	FileName       string
	Resume         []byte
}

// Analyze validates the submission, extracts the resume text, asks the model and normalizes its reply.
func (s *Service) Analyze(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res, err := s.analyze(ctx, req)
	elapsed := time.Since(start)

	fields := map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"provider":    s.Provider,
		"model":       s.Model,
		"file_name":   req.FileName,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		kind := ErrorKind(err)
		metrics.IncAnalysisFailed(kind)
		fields["kind"] = kind
		fields["err"] = err.Error()
		if kind == ErrorCodeValidation {
			telemetry.Warn("analysis.rejected", fields)
		} else {
			telemetry.Error("analysis.failed", fields)
		}
		return Result{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDuration(elapsed)
	if res.Degraded() {
		metrics.IncParseDegraded()
		fields["defaulted"] = res.Defaulted
		telemetry.Warn("analysis.parse_degraded", fields)
	}
	fields["match"] = res.MatchPercentage
	fields["missing_keywords"] = len(res.MissingKeywords)
	telemetry.Info("analysis.completed", fields)
	return res, nil
}

// Ready reports a *ConfigurationError when no model credential is configured.
func (s *Service) Ready() error {
	if s.LLM == nil {
		return &ConfigurationError{CredentialEnv: s.credentialEnv()}
	}
	return nil
}

func (s *Service) analyze(ctx context.Context, req Request) (Result, error) {
	if err := s.Ready(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return Result{}, errMissingJobDescription
	}
	if len(req.Resume) == 0 {
		return Result{}, errMissingResume
	}
	if req.FileName != "" && !IsPDFName(req.FileName) {
		return Result{}, errNotPDF
	}

	metrics.IncAnalysisStarted()

	resumeText, err := s.Extractor.Extract(ctx, req.Resume)
	if err != nil {
		return Result{}, err
	}

	prompt := llm.BuildAnalysisPrompt(resumeText, req.JobDescription)
	raw, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		return Result{}, llm.WrapInvocation(s.Provider, err)
	}

	return Normalize(raw), nil
}

// IsPDFName reports whether name carries a .pdf extension.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func (s *Service) credentialEnv() string {
	if s.CredentialEnv != "" {
		return s.CredentialEnv
	}
	return "GOOGLE_API_KEY"
}
