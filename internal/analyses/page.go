package analyses

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ats-analyzer/internal/shared/server/middleware"
	"ats-analyzer/internal/shared/server/respond"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const (
	noMissingKeywords = "No major keywords missing!"
	sessionCookieAge  = 24 * 60 * 60
)

type pageView struct {
	JobDescription string
	Error          string
	Warning        bool
	Result         *resultView
}

type resultView struct {
	MatchPercentage string
	Keywords        string
	ProfileSummary  string
}

func newResultView(res Result) *resultView {
	keywords := noMissingKeywords
	if len(res.MissingKeywords) > 0 {
		keywords = strings.Join(res.MissingKeywords, ", ")
	}
	return &resultView{
		MatchPercentage: res.MatchPercentage,
		Keywords:        keywords,
		ProfileSummary:  res.ProfileSummary,
	}
}

func (h *Handler) showPage(c *gin.Context) {
	ensureSessionCookie(c)
	renderPage(c, http.StatusOK, pageView{})
}

func (h *Handler) submitPage(c *gin.Context) {
	ensureSessionCookie(c)
	req, err := h.readSubmission(c)
	if err == nil {
		var res Result
		res, err = h.Svc.Analyze(WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c)), req)
		if err == nil {
			renderPage(c, http.StatusOK, pageView{JobDescription: req.JobDescription, Result: newResultView(res)})
			return
		}
	}
	status := StatusFor(err)
	respond.LogError(c, status, ErrorKind(err), err.Error())
	renderPage(c, status, pageView{
		JobDescription: req.JobDescription,
		Error:          "Error: " + err.Error(),
		Warning:        ErrorKind(err) == ErrorCodeValidation,
	})
}

func (h *Handler) pageBusy(c *gin.Context) {
	renderPage(c, http.StatusConflict, pageView{
		Error:   "Error: An analysis is already running for this session.",
		Warning: true,
	})
}

func ensureSessionCookie(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, uuid.NewString(), sessionCookieAge, "/", "", false, true)
}

func renderPage(c *gin.Context, status int, view pageView) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := pageTemplate.Execute(c.Writer, view); err != nil {
		_ = c.Error(err)
	}
}
