// Package view renders the HTML pages of the web front end. Pages are
// gomponents trees; the document shell is a templ component so fragments and
// full pages go through the same renderer.
package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const appName = "HealthTrack"

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Page is everything the layout needs besides the content.
type Page struct {
	Title   string
	User    *domain.UserProfile
	Flashes Flashes
	// Active is the path of the nav entry to highlight.
	Active string
}

// PageTitle returns the document title for a page title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - " + appName
	}
	return appName
}

// Base wraps content in the HTML document shell.
func Base(p Page, content cmp.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc := g.Doctype(
			g.HTML(
				g.Lang("id"),
				g.Head(
					g.Meta(g.Charset("utf-8")),
					g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
					g.TitleEl(cmp.Text(PageTitle(p.Title))),
					g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
					g.Script(g.Src(htmxSrc), g.Defer()),
				),
				g.Body(
					cmp.Iff(p.User != nil, func() cmp.Node { return navBar(p) }),
					g.Main(
						g.Class("container"),
						flashBanner(p.Flashes),
						content,
					),
				),
			),
		)
		return doc.Render(w)
	})
}

// Fragment adapts a gomponents node to templ, for htmx partial responses.
func Fragment(node cmp.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

type navItem struct {
	href, label string
}

var navItems = []navItem{
	{"/dashboard", "Dashboard"},
	{"/health/add", "Catat Kesehatan"},
	{"/symptoms", "Gejala"},
	{"/recommendations/food", "Rekomendasi"},
	{"/goals", "Target"},
	{"/water", "Air Minum"},
	{"/family", "Keluarga"},
	{"/articles", "Artikel"},
	{"/forum", "Forum"},
	{"/profile", "Profil"},
}

func navBar(p Page) cmp.Node {
	return g.Nav(
		g.Class("nav"),
		g.A(g.Class("brand"), g.Href("/dashboard"), cmp.Text(appName)),
		g.Ul(
			cmp.Map(navItems, func(it navItem) cmp.Node {
				return g.Li(g.A(
					g.Href(it.href),
					cmp.If(it.href == p.Active, g.Class("active")),
					cmp.Text(it.label),
				))
			}),
		),
		g.Form(
			g.Method("post"), g.Action("/logout"), g.Class("logout"),
			g.Span(cmp.Text(p.User.Name)),
			g.Button(g.Type("submit"), cmp.Text("Keluar")),
		),
	)
}

func flashBanner(f Flashes) cmp.Node {
	if f.Empty() {
		return nil
	}
	return g.Div(
		g.Class("flashes"),
		cmp.Map(f.Success, func(m string) cmp.Node {
			return g.Div(g.Class("flash flash-success"), g.Role("status"), cmp.Text(m))
		}),
		cmp.Map(f.Error, func(m string) cmp.Node {
			return g.Div(g.Class("flash flash-error"), g.Role("alert"), cmp.Text(m))
		}),
	)
}
