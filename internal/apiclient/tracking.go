package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nfrund/healthtrack/internal/domain"
)

// Water returns today's water intake.
func (c *Client) Water(ctx context.Context) (*domain.WaterIntake, error) {
	return c.water(ctx, call{op: "water.get", method: http.MethodGet, path: "/water"})
}

// AddGlass records one more glass of water.
func (c *Client) AddGlass(ctx context.Context) (*domain.WaterIntake, error) {
	return c.water(ctx, call{op: "water.add", method: http.MethodPost, path: "/water/add"})
}

// RemoveGlass takes back one glass of water.
func (c *Client) RemoveGlass(ctx context.Context) (*domain.WaterIntake, error) {
	return c.water(ctx, call{op: "water.remove", method: http.MethodPost, path: "/water/remove"})
}

// SetWaterGoal changes the daily goal in glasses.
func (c *Client) SetWaterGoal(ctx context.Context, goal int) (*domain.WaterIntake, error) {
	return c.water(ctx, call{op: "water.goal", method: http.MethodPut, path: "/water/goal", body: map[string]int{"goal": goal}})
}

func (c *Client) water(ctx context.Context, cl call) (*domain.WaterIntake, error) {
	var w domain.WaterIntake
	if err := c.do(ctx, cl, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// WaterHistory returns recent days of water intake.
func (c *Client) WaterHistory(ctx context.Context) ([]domain.WaterIntake, error) {
	days := []domain.WaterIntake{}
	if err := c.do(ctx, call{op: "water.history", method: http.MethodGet, path: "/water/history"}, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Reminders lists the user's saved reminders. String IDs are filled from the
// numeric backend IDs.
func (c *Client) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	rs := []domain.Reminder{}
	if err := c.do(ctx, call{op: "reminders.list", method: http.MethodGet, path: "/reminders"}, &rs); err != nil {
		return nil, err
	}
	for i := range rs {
		rs[i].ID = strconv.FormatUint(uint64(rs[i].RemoteID), 10)
	}
	return rs, nil
}

// CreateReminder saves a new reminder.
func (c *Client) CreateReminder(ctx context.Context, req domain.ReminderRequest) (*domain.Reminder, error) {
	return c.reminder(ctx, call{op: "reminders.create", method: http.MethodPost, path: "/reminders", body: req})
}

// UpdateReminder edits a reminder.
func (c *Client) UpdateReminder(ctx context.Context, id uint, req domain.ReminderRequest) (*domain.Reminder, error) {
	return c.reminder(ctx, call{op: "reminders.update", method: http.MethodPut, path: idPath("/reminders", id, ""), body: req})
}

// ToggleReminder flips a reminder between active and paused.
func (c *Client) ToggleReminder(ctx context.Context, id uint) (*domain.Reminder, error) {
	return c.reminder(ctx, call{op: "reminders.toggle", method: http.MethodPut, path: idPath("/reminders", id, "/toggle")})
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, id uint) error {
	return c.do(ctx, call{op: "reminders.delete", method: http.MethodDelete, path: idPath("/reminders", id, "")}, nil)
}

func (c *Client) reminder(ctx context.Context, cl call) (*domain.Reminder, error) {
	var r domain.Reminder
	if err := c.do(ctx, cl, &r); err != nil {
		return nil, err
	}
	r.ID = strconv.FormatUint(uint64(r.RemoteID), 10)
	return &r, nil
}

// Goals lists the user's goals, newest first.
func (c *Client) Goals(ctx context.Context) ([]domain.Goal, error) {
	goals := []domain.Goal{}
	if err := c.do(ctx, call{op: "goals.list", method: http.MethodGet, path: "/goals"}, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateGoal saves a new goal.
func (c *Client) CreateGoal(ctx context.Context, req domain.GoalRequest) (*domain.Goal, error) {
	return c.goal(ctx, call{op: "goals.create", method: http.MethodPost, path: "/goals", body: req})
}

// UpdateGoalProgress sets the current value of a goal.
func (c *Client) UpdateGoalProgress(ctx context.Context, id uint, current float64) (*domain.Goal, error) {
	body := map[string]float64{"current": current}
	return c.goal(ctx, call{op: "goals.progress", method: http.MethodPut, path: idPath("/goals", id, "/progress"), body: body})
}

// ToggleGoal flips a goal's completed flag.
func (c *Client) ToggleGoal(ctx context.Context, id uint) (*domain.Goal, error) {
	return c.goal(ctx, call{op: "goals.toggle", method: http.MethodPut, path: idPath("/goals", id, "/toggle")})
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id uint) error {
	return c.do(ctx, call{op: "goals.delete", method: http.MethodDelete, path: idPath("/goals", id, "")}, nil)
}

// GoalStats summarises goal completion.
func (c *Client) GoalStats(ctx context.Context) (*domain.GoalStats, error) {
	var s domain.GoalStats
	if err := c.do(ctx, call{op: "goals.stats", method: http.MethodGet, path: "/goals/stats"}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) goal(ctx context.Context, cl call) (*domain.Goal, error) {
	var g domain.Goal
	if err := c.do(ctx, cl, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
