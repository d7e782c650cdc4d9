package view

import (
	"strings"

	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

var recommendationTabs = []option{
	{domain.RecommendFood, "Makanan"},
	{domain.RecommendExercise, "Olahraga"},
	{domain.RecommendEmotional, "Emosional"},
	{domain.RecommendDailyMenu, "Menu Harian"},
}

func recommendationNav(active string) cmp.Node {
	return g.Div(
		g.Class("tabs"),
		cmp.Map(recommendationTabs, func(t option) cmp.Node {
			return g.A(g.Href("/recommendations/"+t.value), cmp.If(t.value == active, g.Class("active")), cmp.Text(t.label))
		}),
	)
}

// RecommendationsPage lists the advisories of one kind.
func RecommendationsPage(kind string, recs []domain.Recommendation) cmp.Node {
	return g.Div(
		recommendationNav(kind),
		cmp.If(len(recs) == 0, empty("Belum ada rekomendasi. Catat data kesehatan Anda terlebih dahulu.")),
		cmp.Map(recs, func(r domain.Recommendation) cmp.Node {
			return card(r.Title,
				cmp.If(r.Category != "", g.Span(g.Class("badge"), cmp.Text(Title(r.Category)))),
				g.P(cmp.Text(r.Description)),
				list("Dianjurkan", r.Foods),
				list("Hindari", r.Avoid),
				list("Latihan", r.Exercises),
				cmp.If(r.Duration != "", g.P(cmp.Textf("Durasi: %s", r.Duration))),
				cmp.If(r.Frequency != "", g.P(cmp.Textf("Frekuensi: %s", r.Frequency))),
			)
		}),
	)
}

// DailyMenuPage shows today's meal plan.
func DailyMenuPage(m *domain.DailyMenu) cmp.Node {
	meal := func(label string, p domain.MealPlan) cmp.Node {
		return card(label+": "+p.Title,
			g.P(cmp.Text(p.Description)),
			g.P(g.Class("muted"), cmp.Text(strings.Join(p.Foods, ", "))),
			cmp.If(p.Calories != "", g.Small(cmp.Textf("%s kkal", p.Calories))),
		)
	}
	if m == nil {
		return g.Div(
			recommendationNav(domain.RecommendDailyMenu),
			empty("Menu harian belum tersedia."),
		)
	}
	return g.Div(
		recommendationNav(domain.RecommendDailyMenu),
		g.P(g.Class("tip"), cmp.Text(m.HealthTip)),
		meal("Sarapan", m.Breakfast),
		meal("Makan Siang", m.Lunch),
		meal("Makan Malam", m.Dinner),
		cmp.Map(m.Snacks, func(p domain.MealPlan) cmp.Node { return meal("Camilan", p) }),
		list("Minuman", m.Drinks),
		list("Buah", m.Fruits),
		g.P(g.Strong(cmp.Textf("Total kalori: %s", orDash(m.TotalCalories)))),
	)
}

func list(label string, items []string) cmp.Node {
	if len(items) == 0 {
		return nil
	}
	return g.Div(
		g.Strong(cmp.Text(label)),
		g.Ul(cmp.Map(items, func(s string) cmp.Node { return g.Li(cmp.Text(s)) })),
	)
}
