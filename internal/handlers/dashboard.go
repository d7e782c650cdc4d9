package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/dashboard"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/rendering"
	"github.com/nfrund/healthtrack/internal/view"
)

// AlertRecorder counts alerts shown to users.
type AlertRecorder interface {
	AlertShown(alertType string)
}

// DashboardHandler serves the dashboard and its htmx fragments.
type DashboardHandler struct {
	alerts AlertRecorder
}

// NewDashboardHandler creates a new DashboardHandler. alerts may be nil.
func NewDashboardHandler(alerts AlertRecorder) *DashboardHandler {
	return &DashboardHandler{alerts: alerts}
}

// DashboardGet loads and renders the dashboard (GET /dashboard).
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	ctx := c.Request().Context()
	loader := dashboard.NewLoader(api(c), middleware.FromContext(ctx))
	v, err := loader.Load(ctx, c.QueryParam("period"))
	if err != nil {
		return err
	}
	if h.alerts != nil {
		for _, a := range v.Alerts {
			h.alerts.AlertShown(a.Type)
		}
	}
	return page(c, "Dashboard", "/dashboard", view.DashboardPage(middleware.UserFrom(c), v))
}

// GraphGet re-renders the progress graph for another period
// (GET /dashboard/graph).
func (h *DashboardHandler) GraphGet(c echo.Context) error {
	period := c.QueryParam("period")
	if !domain.ValidPeriod(period) {
		period = domain.PeriodWeek
	}
	points, err := api(c).Graph(c.Request().Context(), period)
	if err != nil {
		if domain.IsSessionExpired(err) {
			return err
		}
		middleware.FromContext(c.Request().Context()).Warn("Graph fetch failed", "period", period, "error", err)
		return fragment(c, view.GraphSection(period, nil, true))
	}
	return fragment(c, view.GraphSection(period, points, false))
}

// DismissAlert removes one alert from the page (POST /dashboard/alerts/dismiss).
// Dismissal is not remembered; the alert returns on the next load if its
// condition still holds.
func (h *DashboardHandler) DismissAlert(c echo.Context) error {
	return rendering.NoContent(c)
}

// CreateReminder saves a reminder from the dashboard form (POST /reminders).
func (h *DashboardHandler) CreateReminder(c echo.Context) error {
	active := true
	req := domain.ReminderRequest{
		Type:     c.FormValue("type"),
		Label:    c.FormValue("label"),
		Time:     c.FormValue("time"),
		IsActive: &active,
	}
	if req.Label == "" || req.Time == "" {
		view.SetFlashError(c, "Label dan waktu pengingat wajib diisi.")
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	if _, err := api(c).CreateReminder(c.Request().Context(), req); err != nil {
		return actionFailed(c, err, "Gagal menyimpan pengingat.", "/dashboard")
	}
	return done(c, "Pengingat ditambahkan.", "/dashboard")
}

// ToggleReminder flips a reminder and returns its row
// (POST /reminders/:id/toggle). Built-in templates are not stored by the
// backend, so their state only flips in the returned row.
func (h *DashboardHandler) ToggleReminder(c echo.Context) error {
	id := c.Param("id")
	remote, err := strconv.ParseUint(id, 10, 0)
	if err != nil {
		for _, r := range domain.DefaultReminders() {
			if r.ID == id {
				wasActive, _ := strconv.ParseBool(c.FormValue("active"))
				r.IsActive = !wasActive
				return fragment(c, view.ReminderRow(r))
			}
		}
		return echo.ErrNotFound
	}
	r, err := api(c).ToggleReminder(c.Request().Context(), uint(remote))
	if err != nil {
		return err
	}
	return fragment(c, view.ReminderRow(*r))
}

// DeleteReminder removes a saved reminder (DELETE /reminders/:id).
func (h *DashboardHandler) DeleteReminder(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := api(c).DeleteReminder(c.Request().Context(), id); err != nil {
		return err
	}
	return rendering.NoContent(c)
}
