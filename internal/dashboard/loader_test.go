package dashboard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nfrund/healthtrack/internal/alerts"
	"github.com/nfrund/healthtrack/internal/dashboard"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	summary    *domain.Dashboard
	summaryErr error
	graph      []domain.GraphPoint
	graphErr   error
	history    *domain.SymptomHistory
	historyErr error
	reminders  []domain.Reminder
	remindErr  error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
	gotPeriod   string
}

func (m *mockSource) enter() func() {
	n := m.inFlight.Add(1)
	for {
		max := m.maxInFlight.Load()
		if n <= max || m.maxInFlight.CompareAndSwap(max, n) {
			break
		}
	}
	time.Sleep(m.delay)
	return func() { m.inFlight.Add(-1) }
}

func (m *mockSource) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	defer m.enter()()
	return m.summary, m.summaryErr
}

func (m *mockSource) Graph(ctx context.Context, period string) ([]domain.GraphPoint, error) {
	defer m.enter()()
	m.gotPeriod = period
	return m.graph, m.graphErr
}

func (m *mockSource) SymptomHistory(ctx context.Context) (*domain.SymptomHistory, error) {
	defer m.enter()()
	return m.history, m.historyErr
}

func (m *mockSource) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	defer m.enter()()
	return m.reminders, m.remindErr
}

func stressed() *domain.Dashboard {
	return &domain.Dashboard{
		HealthScore: 45,
		RecentSymptoms: []domain.Symptom{
			{SymptomName: "Stres", SymptomType: domain.SymptomMental, Severity: 6},
			{SymptomName: "Cemas", SymptomType: domain.SymptomMental, Severity: 5},
			{SymptomName: "Stres kerja", SymptomType: domain.SymptomMental, Severity: 7},
		},
	}
}

func TestLoader_AllSucceed(t *testing.T) {
	src := &mockSource{
		summary:   stressed(),
		graph:     []domain.GraphPoint{{Date: "2026-03-01", Weight: 60}},
		history:   &domain.SymptomHistory{Symptoms: []domain.Symptom{{SymptomName: "Pusing"}}},
		reminders: []domain.Reminder{{ID: "4", RemoteID: 4, Label: "Minum"}},
		delay:     20 * time.Millisecond,
	}

	v, err := dashboard.NewLoader(src, nil).Load(context.Background(), domain.PeriodMonth)
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodMonth, src.gotPeriod)
	assert.Equal(t, 45, v.Summary.HealthScore)
	assert.Len(t, v.Graph, 1)
	assert.Len(t, v.History, 1)
	assert.Equal(t, "Minum", v.Reminders[0].Label)
	assert.Empty(t, v.Failed)
	assert.Equal(t, int32(4), src.maxInFlight.Load(), "fetches run concurrently")

	require.Len(t, v.Alerts, 2)
	assert.Equal(t, alerts.StressAlert, v.Alerts[0])
	assert.Equal(t, alerts.ScoreAlert, v.Alerts[1])
}

func TestLoader_IndependentFailures(t *testing.T) {
	boom := &domain.FetchError{Op: "x", Status: 500}
	src := &mockSource{
		summary:    &domain.Dashboard{HealthScore: 90},
		graphErr:   boom,
		historyErr: boom,
		remindErr:  boom,
	}

	v, err := dashboard.NewLoader(src, nil).Load(context.Background(), domain.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, 90, v.Summary.HealthScore)
	assert.NotNil(t, v.Graph)
	assert.Empty(t, v.Graph)
	assert.NotNil(t, v.History)
	assert.Equal(t, domain.DefaultReminders(), v.Reminders)
	assert.Empty(t, v.Alerts)
	assert.True(t, v.PartFailed(dashboard.PartGraph))
	assert.True(t, v.PartFailed(dashboard.PartHistory))
	assert.True(t, v.PartFailed(dashboard.PartReminders))
	assert.False(t, v.PartFailed(dashboard.PartSummary))
}

func TestLoader_SummaryFailureMeansNoAlerts(t *testing.T) {
	src := &mockSource{summaryErr: errors.New("down"), reminders: []domain.Reminder{}}

	v, err := dashboard.NewLoader(src, nil).Load(context.Background(), "decade")
	require.NoError(t, err)

	assert.Nil(t, v.Summary)
	assert.NotNil(t, v.Alerts)
	assert.Empty(t, v.Alerts)
	assert.Equal(t, domain.PeriodWeek, v.Period, "unknown period falls back to week")
	assert.Len(t, v.Reminders, 10, "empty reminder list falls back to templates")
	assert.True(t, v.Reminders[0].Template())
}

func TestLoader_SessionExpired(t *testing.T) {
	src := &mockSource{summary: stressed(), graphErr: domain.ErrSessionExpired}

	v, err := dashboard.NewLoader(src, nil).Load(context.Background(), domain.PeriodWeek)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Nil(t, v)
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &mockSource{summaryErr: context.Canceled, graphErr: context.Canceled, historyErr: context.Canceled, remindErr: context.Canceled}

	_, err := dashboard.NewLoader(src, nil).Load(ctx, domain.PeriodWeek)
	assert.ErrorIs(t, err, context.Canceled)
}
