package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/handlers"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/rendering"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!!"

// backend is a scripted stand-in for the REST API. Routes are exact
// "METHOD /path" keys and a later json call for the same key replaces the
// earlier answer. Unknown routes get a 404.
type backend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
}

func newBackend() *backend {
	b := &backend{routes: map[string]http.HandlerFunc{}}
	b.json("POST /auth/login", http.StatusOK, domain.AuthResult{
		Token: "tok-1",
		User:  domain.UserProfile{ID: 3, Name: "Ayu", Email: "ayu@example.com"},
	})
	b.json("GET /auth/me", http.StatusOK, domain.UserProfile{ID: 3, Name: "Ayu", Email: "ayu@example.com"})
	return b
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	b.mu.Lock()
	b.calls = append(b.calls, key)
	h, ok := b.routes[key]
	b.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// json makes route answer with status and v in the data envelope, or v
// itself when status is not 2xx.
func (b *backend) json(route string, status int, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 200 && status < 300 {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": v})
			return
		}
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (b *backend) called(call string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == call {
			return true
		}
	}
	return false
}

// harness is an echo app over a fake backend with a cookie jar.
type harness struct {
	t       *testing.T
	e       *echo.Echo
	backend *backend
	cookies map[string]*http.Cookie
}

func newHarness(t *testing.T, b *backend) *harness {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.New()
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.Use(middleware.Logger)
	e.Use(middleware.Session(&account.Factory{BaseURL: srv.URL, HTTP: srv.Client()}))

	auth := handlers.NewAuthHandler()
	e.GET("/login", auth.LoginGet)
	e.POST("/login", auth.LoginPost)
	e.GET("/register", auth.RegisterGet)
	e.POST("/register", auth.RegisterPost)
	e.POST("/forgot-password", auth.ForgotPasswordPost)
	e.POST("/logout", auth.Logout)

	dash := handlers.NewDashboardHandler(nil)
	e.GET("/dashboard", dash.DashboardGet)
	e.GET("/dashboard/graph", dash.GraphGet)
	e.POST("/dashboard/alerts/dismiss", dash.DismissAlert)
	e.POST("/reminders/:id/toggle", dash.ToggleReminder)

	health := handlers.NewHealthHandler()
	e.POST("/symptoms", health.SymptomsPost)
	e.POST("/profile", health.ProfilePost)

	tracking := handlers.NewTrackingHandler()
	e.GET("/water", tracking.WaterGet)
	e.GET("/water/widget", tracking.WaterWidget)
	e.POST("/water/add", tracking.AddGlass)
	e.GET("/goals", tracking.GoalsGet)

	e.GET("/family", handlers.NewFamilyHandler().FamilyGet)

	content := handlers.NewContentHandler()
	e.GET("/articles", content.ArticlesGet)
	e.GET("/forum", content.ForumGet)

	e.GET("/recommendations/:type", handlers.RecommendationsGet)

	return &harness{t: t, e: e, backend: b, cookies: map[string]*http.Cookie{}}
}

func (h *harness) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	h.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(h.cookies, c.Name)
			continue
		}
		h.cookies[c.Name] = c
	}
	return rec
}

func (h *harness) login() {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ayu@example.com"}, "password": {"rahasia"}}, false)
	require.Equal(h.t, http.StatusSeeOther, rec.Code)
	require.Equal(h.t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	require.Contains(h.t, h.cookies, middleware.AuthSessionName)
}
