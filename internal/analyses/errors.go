package analyses

import (
	"context"
	"errors"
	"fmt"

	"ats-analyzer/internal/extract"
	"ats-analyzer/internal/llm"
)

var (
	ErrConfiguration   = errors.New("configuration error")
	ErrInputValidation = errors.New("input validation error")
)

const (
	ErrorCodeConfiguration   = "configuration_error"
	ErrorCodeValidation      = "validation_error"
	ErrorCodeExtraction      = "extraction_error"
	ErrorCodeModelInvocation = "model_invocation_error"
	ErrorCodeCanceled        = "request_canceled"
	ErrorCodeInternal        = "internal_error"
)

// ConfigurationError reports a missing model credential.
type ConfigurationError struct {
	CredentialEnv string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Please set %s in your .env file.", e.CredentialEnv)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ValidationError reports a missing or unacceptable user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInputValidation }

var (
	errMissingJobDescription = &ValidationError{Field: "job_description", Message: "Please enter the job description."}
	errMissingResume         = &ValidationError{Field: "resume", Message: "Please upload a resume PDF file."}
	errNotPDF                = &ValidationError{Field: "resume", Message: "Only PDF resumes are supported."}
)

// ErrorKind maps a pipeline error to its stable code.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return ErrorCodeConfiguration
	case errors.Is(err, ErrInputValidation):
		return ErrorCodeValidation
	case errors.Is(err, extract.ErrExtraction):
		return ErrorCodeExtraction
	case errors.Is(err, llm.ErrInvocation):
		return ErrorCodeModelInvocation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeCanceled
	default:
		return ErrorCodeInternal
	}
}
