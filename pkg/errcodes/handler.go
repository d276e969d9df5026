package errcodes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

// ErrorTemplate is the template rendered for browser requests when a
// renderer is registered on the echo instance.
const ErrorTemplate = "error.html"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ErrorPage is the data handed to ErrorTemplate.
type ErrorPage struct {
	StatusCode int
	Code       string
	Message    string
}

// Handle is an Echo error handler that uses HTTP errors accordingly, and any
// generic error will be interpreted as an internal server error. Browsers get
// an HTML error page; API clients asking for JSON get the error envelope.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}
	if c.Response().Committed {
		logger.FromEchoContext(c).Err(err).Warn("error after response was committed")
		return
	}

	page := h.generatePage(err)

	// Internal server errors
	if page.StatusCode == http.StatusInternalServerError {
		logger.FromEchoContext(c).Err(err).Error("server error")
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(page.StatusCode); err != nil {
			logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler head error")
		}
		return
	}

	if c.Echo().Renderer != nil && !wantsJSON(c.Request()) {
		rerr := c.Render(page.StatusCode, ErrorTemplate, page)
		if rerr == nil {
			return
		}
		logger.FromEchoContext(c).Err(errors.WithStack(rerr)).Error("error handler render error")
	}

	if err := c.JSON(page.StatusCode, envelope(page)); err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) generatePage(err error) ErrorPage {
	code := ""
	msg := ""
	httpCode := http.StatusInternalServerError

	// Echo errors
	var he *echo.HTTPError
	if ok := errors.As(err, &he); ok {
		httpCode = he.Code
		msg = fmt.Sprint(he.Message)
		code = strcase.ToSnake(msg)
	}

	// Custom errors
	var e *Error
	if ok := errors.As(err, &e); ok {
		httpCode = e.HTTPCode
		code = e.Code
		msg = e.Message
	}

	// Internal server errors that aren't Echo errors or custom errors
	if httpCode == http.StatusInternalServerError && msg == "" {
		code = "internal_server_error"
		msg = "Internal Server Error"
	}

	return ErrorPage{StatusCode: httpCode, Code: code, Message: msg}
}

func envelope(page ErrorPage) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"code":        page.Code,
			"message":     page.Message,
			"status_code": page.StatusCode,
		},
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMETextHTML) {
		return false
	}
	return strings.Contains(accept, echo.MIMEApplicationJSON) ||
		strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
