package handlers_test

import (
	"net/http"
	"testing"

	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPages_BackendFailureKeepsEmptyState(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		routes []string
		want   []string
	}{
		{
			name:   "family",
			path:   "/family",
			routes: []string{"GET /family/members", "GET /family/requests"},
			want:   []string{"Belum ada anggota keluarga."},
		},
		{
			name:   "articles",
			path:   "/articles",
			routes: []string{"GET /articles", "GET /articles/categories"},
			want:   []string{"Artikel tidak ditemukan."},
		},
		{
			name:   "article search",
			path:   "/articles?q=tidur",
			routes: []string{"GET /articles/search", "GET /articles/categories"},
			want:   []string{"Artikel tidak ditemukan.", `value="tidur"`},
		},
		{
			name:   "forum",
			path:   "/forum",
			routes: []string{"GET /forum/posts"},
			want:   []string{"Belum ada diskusi."},
		},
		{
			name:   "water",
			path:   "/water",
			routes: []string{"GET /water", "GET /water/history"},
			want:   []string{"Data air minum gagal dimuat.", "Belum ada riwayat."},
		},
		{
			name:   "goals",
			path:   "/goals",
			routes: []string{"GET /goals", "GET /goals/stats"},
			want:   []string{"Belum ada target."},
		},
		{
			name:   "recommendations",
			path:   "/recommendations/" + domain.RecommendFood,
			routes: []string{"GET /recommendations/" + domain.RecommendFood},
			want:   []string{"Belum ada rekomendasi."},
		},
		{
			name:   "daily menu",
			path:   "/recommendations/" + domain.RecommendDailyMenu,
			routes: []string{"GET /recommendations/" + domain.RecommendDailyMenu},
			want:   []string{"Menu harian belum tersedia."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend()
			for _, r := range tt.routes {
				b.json(r, http.StatusInternalServerError, map[string]string{"error": "boom"})
			}
			h := newHarness(t, b)
			h.login()

			rec := h.do(http.MethodGet, tt.path, nil, false)
			require.Equal(t, http.StatusOK, rec.Code)
			for _, want := range tt.want {
				assert.Contains(t, rec.Body.String(), want)
			}
			for _, r := range tt.routes {
				assert.True(t, b.called(r), "%s was requested", r)
			}
		})
	}
}

func TestListPages_ExpiredSessionIsPassedUp(t *testing.T) {
	b := newBackend()
	b.json("GET /forum/posts", http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	h := newHarness(t, b)
	h.login()

	rec := h.do(http.MethodGet, "/forum", nil, false)
	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Belum ada diskusi.")
}

func TestBackendRouteOverride(t *testing.T) {
	b := newBackend()
	b.json("POST /auth/login", http.StatusUnauthorized, map[string]string{"error": "Email atau password salah"})
	b.json("POST /auth/login", http.StatusOK, domain.AuthResult{
		Token: "tok-1",
		User:  domain.UserProfile{ID: 3, Name: "Ayu", Email: "ayu@example.com"},
	})
	h := newHarness(t, b)
	h.login()
}
