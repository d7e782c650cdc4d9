package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/rendering"
	"github.com/nfrund/healthtrack/internal/view"
)

// ContentHandler serves articles and the forum.
type ContentHandler struct{}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

// ArticlesGet lists articles (GET /articles?category=&q=).
func (h *ContentHandler) ArticlesGet(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")
	query := strings.TrimSpace(c.QueryParam("q"))

	var (
		articles []domain.Article
		err      error
	)
	if query != "" {
		var res *domain.ArticlePage
		if res, err = api(c).SearchArticles(ctx, query); err == nil {
			articles = res.Articles
		}
	} else {
		articles, err = api(c).Articles(ctx, category)
	}
	if err := degrade(c, err, "Articles"); err != nil {
		return err
	}
	categories, err := api(c).ArticleCategories(ctx)
	if err := degrade(c, err, "Article categories"); err != nil {
		return err
	}
	return page(c, "Artikel", "/articles", view.ArticlesPage(articles, categories, category, query))
}

// ArticleGet shows one article (GET /articles/:id).
func (h *ContentHandler) ArticleGet(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	a, err := api(c).Article(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return page(c, a.Title, "/articles", view.ArticlePage(a))
}

func userID(c echo.Context) uint {
	if u := middleware.UserFrom(c); u != nil {
		return u.ID
	}
	return 0
}

// ForumGet lists posts (GET /forum).
func (h *ContentHandler) ForumGet(c echo.Context) error {
	posts, err := api(c).Posts(c.Request().Context())
	if err := degrade(c, err, "Forum posts"); err != nil {
		return err
	}
	return page(c, "Forum", "/forum", view.ForumPage(posts, userID(c)))
}

// CreatePost publishes a post (POST /forum).
func (h *ContentHandler) CreatePost(c echo.Context) error {
	req := domain.PostRequest{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: strings.TrimSpace(c.FormValue("content")),
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/forum")
	}
	if err := api(c).CreatePost(c.Request().Context(), req); err != nil {
		return actionFailed(c, err, "Gagal mengirim diskusi.", "/forum")
	}
	return done(c, "Diskusi terkirim.", "/forum")
}

// ThreadGet shows a post with its comments (GET /forum/:id).
func (h *ContentHandler) ThreadGet(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	t, err := api(c).Post(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return page(c, t.Post.Title, "/forum", view.ThreadPage(t, userID(c)))
}

// AddComment appends a comment and returns it for the list
// (POST /forum/:id/comments).
func (h *ContentHandler) AddComment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment is empty")
	}
	if err := api(c).AddComment(c.Request().Context(), id, content); err != nil {
		return err
	}
	name := ""
	if u := middleware.UserFrom(c); u != nil {
		name = u.Name
	}
	return fragment(c, view.CommentItem(domain.Comment{PostID: id, UserID: userID(c), UserName: name, Content: content}))
}

// ToggleLike likes or unlikes a post (POST /forum/:id/like).
func (h *ContentHandler) ToggleLike(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	s, err := api(c).ToggleLike(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return fragment(c, view.LikeButton(id, *s))
}

// DeletePost removes the user's own post (DELETE /forum/:id).
func (h *ContentHandler) DeletePost(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := api(c).DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	if !middleware.IsHTMX(c) {
		return done(c, "Diskusi dihapus.", "/forum")
	}
	return rendering.NoContent(c)
}
