package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/apiclient"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/view"
	cmp "maragu.dev/gomponents"
)

// page renders content inside the layout for the signed-in user, if any.
func page(c echo.Context, title, active string, content cmp.Node) error {
	p := view.Page{
		Title:   title,
		User:    middleware.UserFrom(c),
		Flashes: view.GetFlashData(c),
		Active:  active,
	}
	return c.Render(http.StatusOK, "", view.Base(p, content))
}

// fragment renders an htmx partial.
func fragment(c echo.Context, node cmp.Node) error {
	return c.Render(http.StatusOK, "", view.Fragment(node))
}

// api returns the request's backend client.
func api(c echo.Context) *apiclient.Client {
	return middleware.AccountFrom(c).API
}

// fetchMessage is what a user sees when a backend action fails.
func fetchMessage(err error, fallback string) string {
	var fe *domain.FetchError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return fallback
}

// actionFailed reports a failed form action with a flash and a redirect back.
// An expired session is passed up so the error handler can send the user to
// the login page.
func actionFailed(c echo.Context, err error, fallback, back string) error {
	if domain.IsSessionExpired(err) {
		return err
	}
	middleware.FromContext(c.Request().Context()).Warn("Backend action failed", "path", c.Path(), "error", err)
	view.SetFlashError(c, fetchMessage(err, fallback))
	return middleware.Redirect(c, back)
}

// degrade logs a failed read the page can render without and drops the
// error. An expired session is still passed up.
func degrade(c echo.Context, err error, what string) error {
	if err == nil || domain.IsSessionExpired(err) {
		return err
	}
	middleware.FromContext(c.Request().Context()).Warn(what+" unavailable", "path", c.Path(), "error", err)
	return nil
}

// done flashes a success message and redirects.
func done(c echo.Context, message, target string) error {
	view.SetFlashSuccess(c, message)
	return middleware.Redirect(c, target)
}
