package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/guard"
	"github.com/nfrund/healthtrack/internal/view"
)

// Root sends "/" to the login page, which in turn forwards signed-in users
// to the dashboard.
func Root(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, guard.LoginPath)
}

// NotFound renders the 404 page.
func NotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "", view.Base(view.Page{Title: "Tidak Ditemukan"}, view.NotFoundPage()))
}
