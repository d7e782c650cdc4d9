package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyEmail    = "form_email"
)

// Flashes are the one-shot messages shown above the next rendered page.
type Flashes struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f Flashes) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		slog.Warn("Flash session unavailable", "error", err)
		return
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save flash session", "error", err)
	}
}

// SetFlashSuccess queues a success message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError queues an error message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFormEmail remembers a submitted email so the form can be pre-filled
// after a redirect.
func SetFormEmail(c echo.Context, email string) {
	setFlash(c, flashKeyEmail, email)
}

// FormEmail returns and clears the remembered email.
func FormEmail(c echo.Context) string {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return ""
	}
	values := flashStrings(sess.Flashes(flashKeyEmail))
	if len(values) == 0 {
		return ""
	}
	_ = sess.Save(c.Request(), c.Response())
	return values[0]
}

// GetFlashData returns and clears the queued messages.
func GetFlashData(c echo.Context) Flashes {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return Flashes{}
	}
	f := Flashes{
		Success: flashStrings(sess.Flashes(flashKeySuccess)),
		Error:   flashStrings(sess.Flashes(flashKeyError)),
	}
	if !f.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return f
}

func flashStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
