package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/guard"
	"github.com/nfrund/healthtrack/internal/handlers"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/view"
)

// setupErrorHandling installs the application's HTTP error handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = httpErrorHandler
}

// httpErrorHandler turns handler errors into pages. An expired session sends
// the user to the login page, missing resources get the 404 page, and
// anything else offers a reload of the same URL.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	logger := middleware.FromContext(c.Request().Context())

	if domain.IsSessionExpired(err) {
		logger.Info("Session expired during request", "path", c.Request().URL.Path)
		if rerr := middleware.Redirect(c, guard.LoginPath); rerr != nil {
			logger.Error("Failed to redirect expired session", "error", rerr)
		}
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	var fe *domain.FetchError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	case errors.As(err, &he):
		code = he.Code
	case errors.As(err, &fe):
		logger.Warn("Backend request failed", "op", fe.Op, "status", fe.Status, "error", err)
		code = http.StatusBadGateway
	default:
		logger.Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
	}

	if code == http.StatusNotFound {
		if rerr := handlers.NotFound(c); rerr != nil {
			logger.Error("Failed to render not found page", "error", rerr)
		}
		return
	}

	var rerr error
	switch {
	case c.Request().Method == http.MethodHead:
		rerr = c.NoContent(code)
	case middleware.IsHTMX(c):
		rerr = c.String(code, http.StatusText(code))
	default:
		p := view.Page{Title: "Gagal Memuat", User: middleware.UserFrom(c)}
		rerr = c.Render(code, "", view.Base(p, view.ReloadPage(c.Request().URL.String())))
	}
	if rerr != nil {
		logger.Error("Failed to write error response", "error", rerr)
	}
}
