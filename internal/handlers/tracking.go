package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/rendering"
	"github.com/nfrund/healthtrack/internal/view"
)

// TrackingHandler serves water intake and goals.
type TrackingHandler struct{}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler() *TrackingHandler {
	return &TrackingHandler{}
}

// WaterGet renders the water page (GET /water).
func (h *TrackingHandler) WaterGet(c echo.Context) error {
	ctx := c.Request().Context()
	today, err := api(c).Water(ctx)
	if err := degrade(c, err, "Water intake"); err != nil {
		return err
	}
	history, err := api(c).WaterHistory(ctx)
	if err := degrade(c, err, "Water history"); err != nil {
		return err
	}
	return page(c, "Air Minum", "/water", view.WaterPage(today, history))
}

// WaterWidget renders today's counter (GET /water/widget). A failed read
// degrades to a message inside the widget.
func (h *TrackingHandler) WaterWidget(c echo.Context) error {
	w, err := api(c).Water(c.Request().Context())
	return h.widget(c, w, err)
}

// AddGlass counts one glass (POST /water/add).
func (h *TrackingHandler) AddGlass(c echo.Context) error {
	w, err := api(c).AddGlass(c.Request().Context())
	return h.widget(c, w, err)
}

// RemoveGlass takes one glass back (POST /water/remove).
func (h *TrackingHandler) RemoveGlass(c echo.Context) error {
	w, err := api(c).RemoveGlass(c.Request().Context())
	return h.widget(c, w, err)
}

func (h *TrackingHandler) widget(c echo.Context, w *domain.WaterIntake, err error) error {
	if err != nil {
		if domain.IsSessionExpired(err) {
			return err
		}
		middleware.FromContext(c.Request().Context()).Warn("Water request failed", "path", c.Path(), "error", err)
		w = nil
	}
	return fragment(c, view.WaterWidget(w))
}

// SetGoal changes the daily glass target (POST /water/goal).
func (h *TrackingHandler) SetGoal(c echo.Context) error {
	goal := formInt(c, "goal")
	if goal < 1 || goal > 30 {
		view.SetFlashError(c, "Target harus antara 1 dan 30 gelas.")
		return c.Redirect(http.StatusSeeOther, "/water")
	}
	if _, err := api(c).SetWaterGoal(c.Request().Context(), goal); err != nil {
		return actionFailed(c, err, "Gagal menyimpan target.", "/water")
	}
	return done(c, "Target air minum diperbarui.", "/water")
}

// GoalsGet lists goals (GET /goals).
func (h *TrackingHandler) GoalsGet(c echo.Context) error {
	ctx := c.Request().Context()
	goals, err := api(c).Goals(ctx)
	if err := degrade(c, err, "Goals"); err != nil {
		return err
	}
	stats, err := api(c).GoalStats(ctx)
	if err := degrade(c, err, "Goal stats"); err != nil {
		return err
	}
	return page(c, "Target", "/goals", view.GoalsPage(goals, stats))
}

// CreateGoal saves a goal (POST /goals).
func (h *TrackingHandler) CreateGoal(c echo.Context) error {
	req := domain.GoalRequest{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: c.FormValue("description"),
		Type:        c.FormValue("type"),
		Target:      formFloat(c, "target"),
		Unit:        c.FormValue("unit"),
		Deadline:    c.FormValue("deadline"),
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/goals")
	}
	if _, err := api(c).CreateGoal(c.Request().Context(), req); err != nil {
		return actionFailed(c, err, "Gagal menyimpan target.", "/goals")
	}
	return done(c, "Target ditambahkan.", "/goals")
}

// UpdateProgress sets a goal's current value (PUT /goals/:id/progress).
func (h *TrackingHandler) UpdateProgress(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	current := formFloat(c, "current")
	if current < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "progress must not be negative")
	}
	g, err := api(c).UpdateGoalProgress(c.Request().Context(), id, current)
	if err != nil {
		return err
	}
	return fragment(c, view.GoalRow(*g))
}

// ToggleGoal flips completion (POST /goals/:id/toggle).
func (h *TrackingHandler) ToggleGoal(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	g, err := api(c).ToggleGoal(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return fragment(c, view.GoalRow(*g))
}

// DeleteGoal removes a goal (DELETE /goals/:id).
func (h *TrackingHandler) DeleteGoal(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := api(c).DeleteGoal(c.Request().Context(), id); err != nil {
		return err
	}
	return rendering.NoContent(c)
}
