// Package dashboard assembles the dashboard page from independent backend
// reads.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nfrund/healthtrack/internal/alerts"
	"github.com/nfrund/healthtrack/internal/domain"
)

// Source is the slice of the API the dashboard reads.
type Source interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	Graph(ctx context.Context, period string) ([]domain.GraphPoint, error)
	SymptomHistory(ctx context.Context) (*domain.SymptomHistory, error)
	Reminders(ctx context.Context) ([]domain.Reminder, error)
}

// View is everything the dashboard renders. Each part keeps its default when
// its fetch failed.
type View struct {
	Period    string
	Summary   *domain.Dashboard
	Graph     []domain.GraphPoint
	History   []domain.Symptom
	Reminders []domain.Reminder
	Alerts    []domain.Alert
	// Failed names the parts that could not be loaded.
	Failed []string
}

// Parts of the view, as reported in View.Failed.
const (
	PartSummary   = "summary"
	PartGraph     = "graph"
	PartHistory   = "history"
	PartReminders = "reminders"
)

// Loader fetches a View.
type Loader struct {
	source Source
	logger *slog.Logger
}

// NewLoader creates a loader reading from source.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, logger: logger}
}

// Load runs the four reads concurrently. Unknown periods fall back to a week.
// A failed read is logged and leaves its default; the only error returned is
// domain.ErrSessionExpired, when any read found the session rejected, or the
// context's error when it was cancelled.
func (l *Loader) Load(ctx context.Context, period string) (*View, error) {
	if !domain.ValidPeriod(period) {
		period = domain.PeriodWeek
	}
	v := &View{
		Period:    period,
		Graph:     []domain.GraphPoint{},
		History:   []domain.Symptom{},
		Reminders: domain.DefaultReminders(),
		Alerts:    []domain.Alert{},
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		expired bool
	)
	fail := func(part string, err error) {
		mu.Lock()
		defer mu.Unlock()
		v.Failed = append(v.Failed, part)
		if errors.Is(err, domain.ErrSessionExpired) {
			expired = true
			return
		}
		l.logger.WarnContext(ctx, "Dashboard fetch failed", "op", part, "error", err)
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		d, err := l.source.Dashboard(ctx)
		if err != nil {
			fail(PartSummary, err)
			return
		}
		mu.Lock()
		v.Summary = d
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		points, err := l.source.Graph(ctx, period)
		if err != nil {
			fail(PartGraph, err)
			return
		}
		if points != nil {
			mu.Lock()
			v.Graph = points
			mu.Unlock()
		}
	}()
	go func() {
		defer wg.Done()
		h, err := l.source.SymptomHistory(ctx)
		if err != nil {
			fail(PartHistory, err)
			return
		}
		if h != nil && h.Symptoms != nil {
			mu.Lock()
			v.History = h.Symptoms
			mu.Unlock()
		}
	}()
	go func() {
		defer wg.Done()
		rs, err := l.source.Reminders(ctx)
		if err != nil {
			fail(PartReminders, err)
			return
		}
		if len(rs) > 0 {
			mu.Lock()
			v.Reminders = rs
			mu.Unlock()
		}
	}()
	wg.Wait()

	if expired {
		return nil, domain.ErrSessionExpired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.Summary != nil {
		v.Alerts = alerts.Analyze(v.Summary.Snapshot())
	}
	return v, nil
}

// PartFailed reports whether part could not be loaded.
func (v *View) PartFailed(part string) bool {
	for _, p := range v.Failed {
		if p == part {
			return true
		}
	}
	return false
}
