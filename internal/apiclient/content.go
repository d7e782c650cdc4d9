package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nfrund/healthtrack/internal/domain"
)

// Recommendations returns the advisories of one kind: food, exercise or emotional.
func (c *Client) Recommendations(ctx context.Context, kind string) ([]domain.Recommendation, error) {
	switch kind {
	case domain.RecommendFood, domain.RecommendExercise, domain.RecommendEmotional:
	default:
		return nil, fmt.Errorf("unknown recommendation type %q", kind)
	}
	recs := []domain.Recommendation{}
	if err := c.do(ctx, call{op: "recommendations." + kind, method: http.MethodGet, path: "/recommendations/" + kind}, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// DailyMenu returns today's generated meal plan.
func (c *Client) DailyMenu(ctx context.Context) (*domain.DailyMenu, error) {
	var m domain.DailyMenu
	if err := c.do(ctx, call{op: "recommendations.daily_menu", method: http.MethodGet, path: "/recommendations/daily-menu"}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Articles lists articles, optionally filtered by category.
func (c *Client) Articles(ctx context.Context, category string) ([]domain.Article, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	articles := []domain.Article{}
	if err := c.do(ctx, call{op: "articles.list", method: http.MethodGet, path: "/articles", query: q}, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Article fetches one article.
func (c *Client) Article(ctx context.Context, id uint) (*domain.Article, error) {
	var a domain.Article
	if err := c.do(ctx, call{op: "articles.get", method: http.MethodGet, path: idPath("/articles", id, "")}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ArticleCategories lists the known article categories.
func (c *Client) ArticleCategories(ctx context.Context) ([]string, error) {
	cats := []string{}
	if err := c.do(ctx, call{op: "articles.categories", method: http.MethodGet, path: "/articles/categories"}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// SearchArticles runs a full-text article search.
func (c *Client) SearchArticles(ctx context.Context, query string) (*domain.ArticlePage, error) {
	var page domain.ArticlePage
	q := url.Values{"q": []string{query}}
	if err := c.do(ctx, call{op: "articles.search", method: http.MethodGet, path: "/articles/search", query: q}, &page); err != nil {
		return nil, err
	}
	if page.Articles == nil {
		page.Articles = []domain.Article{}
	}
	return &page, nil
}

// Posts lists forum posts.
func (c *Client) Posts(ctx context.Context) ([]domain.Post, error) {
	posts := []domain.Post{}
	if err := c.do(ctx, call{op: "forum.posts", method: http.MethodGet, path: "/forum/posts"}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes a forum post.
func (c *Client) CreatePost(ctx context.Context, req domain.PostRequest) error {
	return c.do(ctx, call{op: "forum.create", method: http.MethodPost, path: "/forum/posts", body: req}, nil)
}

// Post fetches a post with its comments.
func (c *Client) Post(ctx context.Context, id uint) (*domain.PostThread, error) {
	var t domain.PostThread
	if err := c.do(ctx, call{op: "forum.get", method: http.MethodGet, path: idPath("/forum/posts", id, "")}, &t); err != nil {
		return nil, err
	}
	if t.Comments == nil {
		t.Comments = []domain.Comment{}
	}
	return &t, nil
}

// DeletePost removes one of the user's own posts.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, call{op: "forum.delete", method: http.MethodDelete, path: idPath("/forum/posts", id, "")}, nil)
}

// AddComment replies to a post.
func (c *Client) AddComment(ctx context.Context, id uint, content string) error {
	body := map[string]string{"content": content}
	return c.do(ctx, call{op: "forum.comment", method: http.MethodPost, path: idPath("/forum/posts", id, "/comments"), body: body}, nil)
}

// ToggleLike likes or unlikes a post.
func (c *Client) ToggleLike(ctx context.Context, id uint) (*domain.LikeState, error) {
	var s domain.LikeState
	if err := c.do(ctx, call{op: "forum.like", method: http.MethodPost, path: idPath("/forum/posts", id, "/like")}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
