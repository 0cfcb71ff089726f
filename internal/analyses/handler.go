package analyses

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/shared/server/middleware"
	"ats-analyzer/internal/shared/server/respond"
)

const (
	fieldJobDescription = "job_description"
	fieldResume         = "resume"
	multipartMemory     = 8 << 20
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
	InFlight       *middleware.InFlight
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes, InFlight: middleware.NewInFlight()}
}

// RegisterPage attaches the browser form routes.
func (h *Handler) RegisterPage(r gin.IRoutes) {
	r.GET("/", h.showPage)
	r.POST("/", middleware.SingleFlight(h.InFlight, nil, h.pageBusy), h.submitPage)
}

// RegisterRoutes attaches the JSON analysis route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", middleware.SingleFlight(h.InFlight, nil, nil), h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	req, err := h.readSubmission(c)
	if err == nil {
		var res Result
		res, err = h.Svc.Analyze(WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c)), req)
		if err == nil {
			respond.Private(c, res)
			return
		}
	}
	respond.Error(c, StatusFor(err), ErrorKind(err), err.Error(), nil)
}

// readSubmission pulls the job description and resume out of a form post.
// A missing file yields an empty Resume so the service reports it in order.
func (h *Handler) readSubmission(c *gin.Context) (Request, error) {
	// A missing credential outranks anything wrong with the body.
	if err := h.Svc.Ready(); err != nil {
		return Request{}, err
	}
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return Request{}, &ValidationError{
				Field:   fieldResume,
				Message: fmt.Sprintf("Resume upload exceeds the %d byte limit.", h.MaxUploadBytes),
			}
		}
		return Request{}, &ValidationError{Field: fieldResume, Message: "Could not read the form submission."}
	}

	req := Request{JobDescription: c.Request.FormValue(fieldJobDescription)}
	file, header, err := c.Request.FormFile(fieldResume)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return req, nil
		}
		return Request{}, fmt.Errorf("read resume upload: %w", err)
	}
	defer file.Close()

	req.FileName = header.Filename
	req.Resume, err = io.ReadAll(file)
	if err != nil {
		return Request{}, fmt.Errorf("read resume upload: %w", err)
	}
	return req, nil
}

// StatusFor maps a pipeline error to its HTTP status.
func StatusFor(err error) int {
	switch ErrorKind(err) {
	case ErrorCodeConfiguration:
		return http.StatusServiceUnavailable
	case ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeExtraction:
		return http.StatusUnprocessableEntity
	case ErrorCodeModelInvocation:
		var invErr *llm.InvocationError
		if errors.As(err, &invErr) && invErr.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case ErrorCodeCanceled:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
