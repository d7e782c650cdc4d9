package view

import (
	"net/url"
	"strings"

	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// ArticlesPage lists articles, optionally filtered by category or a search.
func ArticlesPage(articles []domain.Article, categories []string, active, query string) cmp.Node {
	return g.Div(
		g.Form(
			g.Class("inline search"), g.Method("get"), g.Action("/articles"),
			g.Input(g.Type("search"), g.Name("q"), g.Value(query), g.Placeholder("Cari artikel...")),
			g.Button(g.Type("submit"), cmp.Text("Cari")),
		),
		g.Div(
			g.Class("tabs"),
			g.A(g.Href("/articles"), cmp.If(active == "" && query == "", g.Class("active")), cmp.Text("Semua")),
			cmp.Map(categories, func(c string) cmp.Node {
				return g.A(
					g.Href("/articles?category="+url.QueryEscape(c)),
					cmp.If(c == active, g.Class("active")),
					cmp.Text(Title(c)),
				)
			}),
		),
		cmp.If(len(articles) == 0, empty("Artikel tidak ditemukan.")),
		g.Div(g.Class("grid"), cmp.Map(articles, func(a domain.Article) cmp.Node {
			return g.Article(
				g.Class("card article"),
				cmp.If(a.ImageURL != "", g.Img(g.Src(a.ImageURL), g.Alt(a.Title))),
				g.H3(g.A(g.Href("/articles/"+uitoa(a.ID)), cmp.Text(a.Title))),
				g.P(cmp.Text(a.Summary)),
				g.Small(g.Class("muted"), cmp.Textf("%s · %d menit", Title(a.Category), a.ReadTime)),
			)
		})),
	)
}

// ArticlePage is a single article. Paragraphs are separated by blank lines.
func ArticlePage(a *domain.Article) cmp.Node {
	paras := strings.Split(strings.ReplaceAll(a.Content, "\r\n", "\n"), "\n\n")
	return g.Article(
		g.Class("card article-detail"),
		g.A(g.Href("/articles"), cmp.Text("← Semua artikel")),
		g.H1(cmp.Text(a.Title)),
		g.P(g.Class("muted"), cmp.Textf("%s · %d menit baca · %s", Title(a.Category), a.ReadTime, Date(a.CreatedAt))),
		cmp.If(a.ImageURL != "", g.Img(g.Src(a.ImageURL), g.Alt(a.Title))),
		cmp.Map(paras, func(p string) cmp.Node {
			p = strings.TrimSpace(p)
			if p == "" {
				return nil
			}
			return g.P(cmp.Text(p))
		}),
	)
}

// ForumPage lists posts and the new post form.
func ForumPage(posts []domain.Post, userID uint) cmp.Node {
	return g.Div(
		card("Tulis Diskusi",
			g.Form(
				g.Method("post"), g.Action("/forum"),
				field("Judul", "title", "text", "", g.Required(), g.MaxLength("200")),
				textArea("Isi", "content", ""),
				submit("Kirim"),
			),
		),
		cmp.If(len(posts) == 0, empty("Belum ada diskusi.")),
		g.Div(g.ID("posts"), cmp.Map(posts, func(p domain.Post) cmp.Node {
			return postCard(p, userID, true)
		})),
	)
}

func postCard(p domain.Post, userID uint, link bool) cmp.Node {
	id := uitoa(p.ID)
	title := cmp.Text(p.Title)
	if link {
		title = g.A(g.Href("/forum/"+id), cmp.Text(p.Title))
	}
	return g.Article(
		g.Class("card post"),
		g.H3(title),
		g.P(g.Class("muted"), cmp.Textf("%s · %s", p.UserName, Date(p.CreatedAt))),
		g.P(cmp.Text(p.Content)),
		g.Div(
			g.Class("post-actions"),
			LikeButton(p.ID, domain.LikeState{IsLiked: p.IsLiked, LikesCount: p.LikesCount}),
			g.Span(cmp.Textf("%d komentar", p.CommentsCount)),
			cmp.If(p.UserID == userID, g.Button(
				g.Type("button"),
				hx.Delete("/forum/"+id), hx.Confirm("Hapus diskusi ini?"),
				hx.Target("closest .post"), hx.Swap("outerHTML"),
				cmp.Text("Hapus"),
			)),
		),
	)
}

// LikeButton toggles a like and replaces itself with the new count.
func LikeButton(postID uint, s domain.LikeState) cmp.Node {
	label, class := "Suka", "like"
	if s.IsLiked {
		label, class = "Batal Suka", "like liked"
	}
	return g.Button(
		g.Type("button"), g.Class(class),
		hx.Post("/forum/"+uitoa(postID)+"/like"), hx.Swap("outerHTML"),
		cmp.Textf("%s (%d)", label, s.LikesCount),
	)
}

// ThreadPage is a post with its comments.
func ThreadPage(t *domain.PostThread, userID uint) cmp.Node {
	return g.Div(
		g.A(g.Href("/forum"), cmp.Text("← Forum")),
		postCard(t.Post, userID, false),
		card("Komentar",
			cmp.If(len(t.Comments) == 0, empty("Belum ada komentar.")),
			g.Ul(g.Class("list"), g.ID("comments"), cmp.Map(t.Comments, CommentItem)),
			g.Form(
				hx.Post("/forum/"+uitoa(t.Post.ID)+"/comments"),
				hx.Target("#comments"), hx.Swap("beforeend"),
				cmp.Attr("hx-on::after-request", "this.reset()"),
				textArea("Komentar", "content", ""),
				submit("Kirim"),
			),
		),
	)
}

// CommentItem is one comment in a thread.
func CommentItem(c domain.Comment) cmp.Node {
	return g.Li(
		g.Strong(cmp.Text(c.UserName)),
		g.Small(g.Class("muted"), cmp.Text(" "+Date(c.CreatedAt))),
		g.P(cmp.Text(c.Content)),
	)
}
