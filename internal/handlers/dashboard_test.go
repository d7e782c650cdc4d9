package handlers_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/nfrund/healthtrack/internal/alerts"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stressed(n int) []domain.Symptom {
	out := make([]domain.Symptom, n)
	for i := range out {
		out[i] = domain.Symptom{SymptomType: domain.SymptomMental, SymptomName: "Stres", Severity: 7, LoggedAt: time.Now()}
	}
	return out
}

func TestDashboardGet(t *testing.T) {
	b := newBackend()
	b.json("GET /health/dashboard", http.StatusOK, domain.Dashboard{HealthScore: 40, RecentSymptoms: stressed(3)})
	b.json("GET /health/graph/month", http.StatusOK, []domain.GraphPoint{{Date: "2026-10-01", Weight: 61, BMI: 22.4}})
	b.json("GET /symptoms/history", http.StatusOK, domain.SymptomHistory{})
	b.json("GET /reminders", http.StatusInternalServerError, map[string]string{"error": "boom"})
	h := newHarness(t, b)
	h.login()

	rec := h.do(http.MethodGet, "/dashboard?period=month", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, alerts.StressAlert.Title)
	assert.Contains(t, body, alerts.ScoreAlert.Title)
	assert.NotContains(t, body, alerts.SleepAlert.Title)
	assert.Contains(t, body, "Minum Air Pagi", "failed reminders fall back to templates")
	assert.Contains(t, body, "61")
}

func TestGraphFragment(t *testing.T) {
	b := newBackend()
	b.json("GET /health/graph/week", http.StatusBadGateway, map[string]string{})
	h := newHarness(t, b)
	h.login()

	rec := h.do(http.MethodGet, "/dashboard/graph?period=decade", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-period="week"`)
	assert.Contains(t, rec.Body.String(), "Grafik gagal dimuat.")
}

func TestDismissAlert(t *testing.T) {
	h := newHarness(t, newBackend())
	h.login()

	rec := h.do(http.MethodPost, "/dashboard/alerts/dismiss", url.Values{}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestToggleTemplateReminder(t *testing.T) {
	h := newHarness(t, newBackend())
	h.login()

	rec := h.do(http.MethodPost, "/reminders/default-1/toggle", url.Values{"active": {"true"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reminder-paused")
	assert.False(t, h.backend.called("PUT /reminders/default-1/toggle"))

	rec = h.do(http.MethodPost, "/reminders/default-99/toggle", url.Values{}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSymptomsPost(t *testing.T) {
	b := newBackend()
	b.json("POST /symptoms", http.StatusCreated, domain.Symptom{ID: 1})
	b.json("POST /symptoms/batch", http.StatusCreated, map[string]any{})
	h := newHarness(t, b)
	h.login()

	rec := h.do(http.MethodPost, "/symptoms", url.Values{"symptom": {"mental|Stres"}, "severity": {"6"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, b.called("POST /symptoms"))
	assert.False(t, b.called("POST /symptoms/batch"))

	h.do(http.MethodPost, "/symptoms", url.Values{"symptom": {"mental|Stres", "physical|Pusing"}, "severity": {"6"}}, false)
	assert.True(t, b.called("POST /symptoms/batch"))

	rec = h.do(http.MethodPost, "/symptoms", url.Values{"symptom": {"mental|Stres"}, "severity": {"11"}}, false)
	assert.Equal(t, "/symptoms", rec.Header().Get("Location"))
}

func TestWaterFragments(t *testing.T) {
	b := newBackend()
	b.json("GET /water", http.StatusOK, domain.WaterIntake{Glasses: 2, Goal: 8, Percentage: 25, Remaining: 6})
	b.json("POST /water/add", http.StatusOK, domain.WaterIntake{Glasses: 3, Goal: 8, Percentage: 37.5, Remaining: 5})
	h := newHarness(t, b)
	h.login()

	assert.Contains(t, h.do(http.MethodGet, "/water/widget", nil, true).Body.String(), "2 / 8 gelas")
	assert.Contains(t, h.do(http.MethodPost, "/water/add", url.Values{}, true).Body.String(), "3 / 8 gelas")
}

func TestProfilePostRefreshesUser(t *testing.T) {
	b := newBackend()
	b.json("PUT /auth/profile", http.StatusOK, domain.UserProfile{ID: 3, Name: "Ayu Lestari", Email: "ayu@example.com"})
	h := newHarness(t, b)
	h.login()

	rec := h.do(http.MethodPost, "/profile", url.Values{"name": {"Ayu Lestari"}, "height_cm": {"160"}, "weight_kg": {"55,5"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
	assert.True(t, b.called("PUT /auth/profile"))
}

func TestRecommendationsUnknownKind(t *testing.T) {
	h := newHarness(t, newBackend())
	h.login()

	rec := h.do(http.MethodGet, "/recommendations/astrology", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, h.backend.called("GET /recommendations/astrology"))
}
