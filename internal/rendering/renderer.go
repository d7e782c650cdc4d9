// Package rendering writes templ and gomponents output to echo responses.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders either component flavour. It is installed as the echo
// renderer so handlers can call c.Render(status, "", component).
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// node is the gomponents.Node method set.
type node interface {
	Render(w io.Writer) error
}

func (r *Renderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case node:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// Bytes renders a component into memory.
func (r *Renderer) Bytes(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders into memory first so a failed render never leaves a half
// written page behind a 200 status.
func (r *Renderer) Write(c echo.Context, status int, component any) error {
	b, err := r.Bytes(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, b)
}

// Render implements echo.Renderer. The template name is ignored.
func (r *Renderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}

// NoContent answers an htmx request whose target should simply disappear.
func NoContent(c echo.Context) error {
	return c.HTML(http.StatusOK, "")
}
