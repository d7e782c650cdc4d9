package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nfrund/healthtrack/internal/domain"
)

// CreateHealthRecord stores a new physical measurement.
func (c *Client) CreateHealthRecord(ctx context.Context, req domain.HealthRecordRequest) (*domain.HealthRecord, error) {
	var rec domain.HealthRecord
	if err := c.do(ctx, call{op: "health.create", method: http.MethodPost, path: "/health", body: req}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// HealthRecords lists every stored measurement.
func (c *Client) HealthRecords(ctx context.Context) ([]domain.HealthRecord, error) {
	var recs []domain.HealthRecord
	if err := c.do(ctx, call{op: "health.list", method: http.MethodGet, path: "/health"}, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// LatestHealthRecord returns the newest measurement.
func (c *Client) LatestHealthRecord(ctx context.Context) (*domain.HealthRecord, error) {
	var rec domain.HealthRecord
	if err := c.do(ctx, call{op: "health.latest", method: http.MethodGet, path: "/health/latest"}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Dashboard fetches the dashboard aggregate. Absent collections come back
// as empty slices.
func (c *Client) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var d domain.Dashboard
	if err := c.do(ctx, call{op: "health.dashboard", method: http.MethodGet, path: "/health/dashboard"}, &d); err != nil {
		return nil, err
	}
	if d.RecentSymptoms == nil {
		d.RecentSymptoms = []domain.Symptom{}
	}
	if d.WeeklyProgress == nil {
		d.WeeklyProgress = []domain.HealthRecord{}
	}
	if d.Recommendations == nil {
		d.Recommendations = []domain.RecommendationItem{}
	}
	return &d, nil
}

// Graph returns weight and BMI points for the period.
func (c *Client) Graph(ctx context.Context, period string) ([]domain.GraphPoint, error) {
	if !domain.ValidPeriod(period) {
		return nil, fmt.Errorf("unknown graph period %q", period)
	}
	points := []domain.GraphPoint{}
	if err := c.do(ctx, call{op: "health.graph", method: http.MethodGet, path: "/health/graph/" + url.PathEscape(period)}, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []domain.GraphPoint{}
	}
	return points, nil
}

// SymptomCatalogue lists the predefined symptoms grouped by type.
func (c *Client) SymptomCatalogue(ctx context.Context) (*domain.SymptomCatalogue, error) {
	var cat domain.SymptomCatalogue
	if err := c.do(ctx, call{op: "symptoms.list", method: http.MethodGet, path: "/symptoms/list"}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// LogSymptom records one symptom.
func (c *Client) LogSymptom(ctx context.Context, req domain.SymptomRequest) (*domain.Symptom, error) {
	var s domain.Symptom
	if err := c.do(ctx, call{op: "symptoms.log", method: http.MethodPost, path: "/symptoms", body: req}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LogSymptoms records several symptoms in one request.
func (c *Client) LogSymptoms(ctx context.Context, reqs []domain.SymptomRequest) error {
	body := map[string][]domain.SymptomRequest{"symptoms": reqs}
	return c.do(ctx, call{op: "symptoms.log_batch", method: http.MethodPost, path: "/symptoms/batch", body: body}, nil)
}

// SymptomHistory returns the most recent symptoms, flat and grouped by day.
func (c *Client) SymptomHistory(ctx context.Context) (*domain.SymptomHistory, error) {
	var h domain.SymptomHistory
	if err := c.do(ctx, call{op: "symptoms.history", method: http.MethodGet, path: "/symptoms/history"}, &h); err != nil {
		return nil, err
	}
	if h.Symptoms == nil {
		h.Symptoms = []domain.Symptom{}
	}
	return &h, nil
}

// SymptomStats returns the backend's symptom statistics as opaque JSON.
func (c *Client) SymptomStats(ctx context.Context) (map[string]any, error) {
	stats := map[string]any{}
	if err := c.do(ctx, call{op: "symptoms.stats", method: http.MethodGet, path: "/symptoms/stats"}, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func idPath(prefix string, id uint, suffix string) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10) + suffix
}
