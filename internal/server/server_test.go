package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/config"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/metrics"
	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/rendering"
	"github.com/nfrund/healthtrack/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	// --- Setup ---
	e := echo.New()
	e.Renderer = rendering.New()

	// Capture log output by pointing the default logger at a buffer.
	var logBuffer bytes.Buffer
	handler := slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{
		AddSource: true,
	})
	originalLogger := slog.Default()
	slog.SetDefault(slog.New(handler))
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})

	// --- Act ---
	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusInternalServerError, rec.Code, "Expected a 500 Internal Server Error response")
	assert.Contains(t, rec.Body.String(), `href="/test-unhandled-error"`, "reload link retries the same URL")

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"")
	assert.Contains(t, logOutput, "stack_trace=")
	assert.Contains(t, logOutput, "runtime/debug/stack.go", "Stack trace should originate from the debug package")
	assert.Contains(t, logOutput, "internal/server/server_test.go", "Stack trace should point back to this test file")
}

func TestHTTPErrorHandler_Kinds(t *testing.T) {
	e := echo.New()
	e.Renderer = rendering.New()
	setupErrorHandling(e)

	e.GET("/expired", func(c echo.Context) error { return domain.ErrSessionExpired })
	e.GET("/missing", func(c echo.Context) error {
		return &domain.FetchError{Op: "content.article", Status: 404, Err: domain.ErrNotFound}
	})
	e.GET("/upstream", func(c echo.Context) error {
		return &domain.FetchError{Op: "content.articles", Status: 500}
	})
	e.GET("/bad", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "nope") })

	serve := func(path string, htmx bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if htmx {
			req.Header.Set("HX-Request", "true")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("expired session goes to login", func(t *testing.T) {
		rec := serve("/expired", false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

		rec = serve("/expired", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	})

	t.Run("missing resource renders not found", func(t *testing.T) {
		rec := serve("/missing", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Halaman Tidak Ditemukan")
	})

	t.Run("backend failure offers a reload", func(t *testing.T) {
		rec := serve("/upstream", false)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Muat Ulang")
	})

	t.Run("htmx errors are plain text", func(t *testing.T) {
		rec := serve("/bad", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusText(http.StatusBadRequest), rec.Body.String())
	})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	backend := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		APIBaseURL:    backend.URL,
		Addr:          "127.0.0.1:0",
		SessionSecret: "a-very-secret-key-for-testing-!!",
		HTTPTimeout:   time.Second,
	}
	return New(Dependencies{
		Config:   cfg,
		Accounts: &account.Factory{BaseURL: backend.URL, HTTP: backend.Client()},
		Metrics:  metrics.New(),
	})
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		code     int
		location string
		body     string
	}{
		{"root goes to login", http.MethodGet, "/", http.StatusSeeOther, "/login", ""},
		{"unknown path goes to login", http.MethodGet, "/no/such/page", http.StatusSeeOther, "/login", ""},
		{"protected page needs a session", http.MethodGet, "/dashboard", http.StatusSeeOther, "/login", ""},
		{"protected action needs a session", http.MethodPost, "/water/add", http.StatusSeeOther, "/login", ""},
		{"login page renders", http.MethodGet, "/login", http.StatusOK, "", "<form"},
		{"liveness", http.MethodGet, "/healthz", http.StatusOK, "", "OK"},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "", "go_goroutines"},
		{"static assets", http.MethodGet, "/static/app.css", http.StatusOK, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.E.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.code, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
			}
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}
}

func TestRoutes_RequestID(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

type expiryRecorder struct {
	mu      sync.Mutex
	reasons []string
}

func (r *expiryRecorder) SessionExpired(_ context.Context, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *expiryRecorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reasons...)
}

func TestSubscribeSessionEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	rec := &expiryRecorder{}
	require.NoError(t, SubscribeSessionEvents(ctx, bus, rec))

	require.NoError(t, pubsub.Publish(ctx, bus, session.StartedEvent, "3", session.Event{UserID: 3, Reason: session.ReasonLogin}))
	require.NoError(t, pubsub.Publish(ctx, bus, session.ExpiredEvent, "3", session.Event{UserID: 3, Reason: session.ReasonUnauthorized}))

	assert.Eventually(t, func() bool {
		return len(rec.seen()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{session.ReasonUnauthorized}, rec.seen())
}

func TestRun_StopsWithContext(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
