package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nfrund/healthtrack/internal/apiclient"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is a minimal apiclient.Session that counts Expire calls.
type fakeSession struct {
	mu      sync.Mutex
	token   string
	expired int
}

func (s *fakeSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) Expire(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired++
	s.token = ""
	return true
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []string
}

func (o *recordingObserver) ObserveRequest(op string, status int, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*apiclient.Client, *fakeSession) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := apiclient.New(srv.URL + "/api")
	sess := &fakeSession{token: "tok-123"}
	c.Bind(sess)
	return c, sess
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotID, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(apiclient.HeaderRequestID)
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 7, "name": "Ayu"}})
	})

	ctx := apiclient.WithRequestID(context.Background(), "req-1")
	u, err := c.Me(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "req-1", gotID)
	assert.Equal(t, "/api/auth/me", gotPath)
	assert.Equal(t, uint(7), u.ID)
	assert.Equal(t, "Ayu", u.Name)
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	var gotAuth, gotID string
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(apiclient.HeaderRequestID)
		writeJSON(w, http.StatusOK, []string{"a", "b"})
	})
	sess.token = ""

	cats, err := c.ArticleCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.NotEmpty(t, gotID, "a request ID is generated when the context has none")
	assert.Equal(t, []string{"a", "b"}, cats)
}

func TestClient_DecodesBareBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "glasses": 3, "goal": 8, "remaining": 5})
	})

	w, err := c.Water(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, w.Glasses)
	assert.Equal(t, 8, w.Goal)
	assert.Equal(t, 5, w.Remaining)
}

func TestClient_DashboardDefaultsEmptyCollections(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"health_score": 72}})
	})

	d, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 72, d.HealthScore)
	assert.NotNil(t, d.RecentSymptoms)
	assert.NotNil(t, d.WeeklyProgress)
	assert.NotNil(t, d.Recommendations)
}

func TestClient_Unauthorized(t *testing.T) {
	tests := []struct {
		name string
		call func(c *apiclient.Client) error
	}{
		{"dashboard", func(c *apiclient.Client) error { _, err := c.Dashboard(context.Background()); return err }},
		{"me", func(c *apiclient.Client) error { _, err := c.Me(context.Background()); return err }},
		{"add glass", func(c *apiclient.Client) error { _, err := c.AddGlass(context.Background()); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			})

			err := tt.call(c)
			assert.ErrorIs(t, err, domain.ErrSessionExpired)
			assert.Equal(t, 1, sess.expired)
		})
	}
}

func TestClient_AuthExemptRejection(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Email atau password salah"})
	})

	_, err := c.Login(context.Background(), domain.LoginRequest{Email: "a@b.c", Password: "wrong12"})
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "Email atau password salah", authErr.Message)
	assert.Zero(t, sess.expired, "a failed login must not reset the session")
	assert.False(t, errors.Is(err, domain.ErrSessionExpired))
}

func TestClient_AuthExemptWithoutMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Register(context.Background(), domain.RegisterRequest{Email: "a@b.c", Password: "secret1", Name: "A"})
	assert.Equal(t, domain.DefaultRegisterMessage, domain.AuthMessage(err, domain.DefaultRegisterMessage))
}

func TestClient_FetchErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Artikel tidak ditemukan"})
		})
		_, err := c.Article(context.Background(), 9)

		var fe *domain.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "articles.get", fe.Op)
		assert.Equal(t, http.StatusNotFound, fe.Status)
		assert.Equal(t, "Artikel tidak ditemukan", fe.Message)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, sess.expired)
	})

	t.Run("server error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		})
		_, err := c.Goals(context.Background())

		var fe *domain.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusInternalServerError, fe.Status)
		assert.False(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := apiclient.New(srv.URL)
		_, err := c.Posts(context.Background())

		var fe *domain.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Zero(t, fe.Status)
		assert.NotNil(t, fe.Err)
	})
}

func TestClient_RemindersFillStringIDs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "ok",
			"data":    []map[string]any{{"id": 12, "type": "water", "label": "Minum", "time": "08:00", "is_active": true}},
		})
	})

	rs, err := c.Reminders(context.Background())
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "12", rs[0].ID)
	assert.False(t, rs[0].Template())
}

func TestClient_GraphRejectsUnknownPeriod(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})

	_, err := c.Graph(context.Background(), "decade")
	assert.Error(t, err)
	assert.Zero(t, hits.Load())

	points, err := c.Graph(context.Background(), domain.PeriodMonth)
	require.NoError(t, err)
	assert.NotNil(t, points)
}

func TestClient_ArticlesQuery(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []any{})
	})

	_, err := c.Articles(context.Background(), "nutrisi")
	require.NoError(t, err)
	assert.Equal(t, "category=nutrisi", gotQuery)
}

func TestClient_ObserverSeesEveryRequest(t *testing.T) {
	obs := &recordingObserver{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{}})
	}))
	t.Cleanup(srv.Close)
	c := apiclient.New(srv.URL, apiclient.WithObserver(obs))

	_, _ = c.GoalStats(context.Background())
	_, _ = c.DailyMenu(context.Background())
	assert.Equal(t, []string{"goals.stats", "recommendations.daily_menu"}, obs.ops)
}
