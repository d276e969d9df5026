// Package notice carries one-shot success and error messages from an action
// to the page it redirects to, using a short-lived cookie.
package notice

import (
	"encoding/base64"
	"net/http"

	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/segmentio/encoding/json"
)

const cookieName = "bookshelf_notice"

// GenericFailure is shown when an action fails for a reason the user can't act
// on. The underlying error is logged instead.
const GenericFailure = "Something went wrong. Please try again."

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (n *Notice) IsError() bool {
	return n.Level == LevelError
}

// Set stores n so the next page rendered for this client shows it.
func Set(c echo.Context, n Notice) {
	raw, err := json.Marshal(n)
	if err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("failed to encode notice")
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending notice, if any, and clears it. Malformed cookies are
// treated as absent.
func Pop(c echo.Context) *Notice {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	n := &Notice{}
	if err := json.Unmarshal(raw, n); err != nil || n.Message == "" {
		return nil
	}
	if n.Level != LevelError {
		n.Level = LevelSuccess
	}
	return n
}

// Success redirects to the given path with a success notice.
func Success(c echo.Context, to, msg string) error {
	Set(c, Notice{Level: LevelSuccess, Message: msg})
	return errors.WithStack(c.Redirect(http.StatusSeeOther, to))
}

// Failure redirects to the given path with the message of err. Errors from
// errcodes are shown as-is; anything else is logged and replaced with
// GenericFailure.
func Failure(c echo.Context, to string, err error) error {
	Set(c, Notice{Level: LevelError, Message: Message(c, err)})
	return errors.WithStack(c.Redirect(http.StatusSeeOther, to))
}

// Message is the user-facing text for err.
func Message(c echo.Context, err error) string {
	var e *errcodes.Error
	if errors.As(err, &e) {
		return e.Message
	}
	logger.FromEchoContext(c).Err(err).Error("action failed")
	return GenericFailure
}
