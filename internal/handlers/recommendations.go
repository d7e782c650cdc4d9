package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/view"
)

// RecommendationsGet renders one recommendation tab
// (GET /recommendations/:type). Unknown kinds are not found.
func RecommendationsGet(c echo.Context) error {
	ctx := c.Request().Context()
	kind := c.Param("type")
	if kind == domain.RecommendDailyMenu {
		menu, err := api(c).DailyMenu(ctx)
		if err := degrade(c, err, "Daily menu"); err != nil {
			return err
		}
		return page(c, "Menu Harian", "/recommendations/food", view.DailyMenuPage(menu))
	}
	switch kind {
	case domain.RecommendFood, domain.RecommendExercise, domain.RecommendEmotional:
	default:
		return echo.ErrNotFound
	}
	recs, err := api(c).Recommendations(ctx, kind)
	if err := degrade(c, err, "Recommendations"); err != nil {
		return err
	}
	return page(c, "Rekomendasi", "/recommendations/food", view.RecommendationsPage(kind, recs))
}
