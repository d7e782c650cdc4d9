package view

import (
	"strconv"

	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// WaterWidget is today's water intake with the +/- controls. It replaces
// itself on every change.
func WaterWidget(w *domain.WaterIntake) cmp.Node {
	if w == nil {
		return g.Div(g.ID("water-widget"), empty("Data air minum gagal dimuat."))
	}
	return g.Div(
		g.ID("water-widget"), g.Class("water"),
		g.P(g.Class("stat-value"), cmp.Textf("%d / %d gelas", w.Glasses, w.Goal)),
		progressBar(w.Percentage),
		cmp.If(w.Remaining > 0, g.P(g.Class("muted"), cmp.Textf("%d gelas lagi", w.Remaining))),
		cmp.If(w.Remaining <= 0, g.P(g.Class("muted"), cmp.Text("Target hari ini tercapai!"))),
		g.Div(
			g.Class("water-controls"),
			g.Button(
				g.Type("button"), g.Aria("label", "Kurangi"),
				hx.Post("/water/remove"), hx.Target("#water-widget"), hx.Swap("outerHTML"),
				cmp.If(w.Glasses <= 0, g.Disabled()),
				cmp.Text("−"),
			),
			g.Button(
				g.Type("button"), g.Aria("label", "Tambah"),
				hx.Post("/water/add"), hx.Target("#water-widget"), hx.Swap("outerHTML"),
				cmp.Text("+"),
			),
		),
	)
}

// WaterPage shows the widget, the daily goal and past days.
func WaterPage(w *domain.WaterIntake, history []domain.WaterIntake) cmp.Node {
	goal := "8"
	if w != nil && w.Goal > 0 {
		goal = itoa(w.Goal)
	}
	return g.Div(
		card("Air Minum Hari Ini", WaterWidget(w)),
		card("Target Harian",
			g.Form(
				g.Class("inline"), g.Method("post"), g.Action("/water/goal"),
				field("Gelas per hari", "goal", "number", goal, g.Min("1"), g.Max("30"), g.Required()),
				submit("Simpan"),
			),
		),
		card("Riwayat",
			cmp.If(len(history) == 0, empty("Belum ada riwayat.")),
			g.Ul(g.Class("list"), cmp.Map(history, func(d domain.WaterIntake) cmp.Node {
				return g.Li(
					g.Span(cmp.Text(d.Date)),
					g.Span(cmp.Textf("%d / %d", d.Glasses, d.Goal)),
					progressBar(d.Percentage),
				)
			})),
		),
	)
}

var goalTypes = []option{
	{domain.GoalWeight, "Berat Badan"},
	{domain.GoalExercise, "Olahraga"},
	{domain.GoalWater, "Air Minum"},
	{domain.GoalSleep, "Tidur"},
	{domain.GoalCustom, "Lainnya"},
}

// GoalsPage lists goals with their progress and the create form.
func GoalsPage(goals []domain.Goal, stats *domain.GoalStats) cmp.Node {
	var summary cmp.Node
	if stats != nil {
		summary = g.Div(
			g.Class("stats"),
			g.Div(g.Class("stat"), g.Span(g.Class("stat-value"), cmp.Text(itoa(stats.Total))), g.Span(g.Class("stat-label"), cmp.Text("Total"))),
			g.Div(g.Class("stat"), g.Span(g.Class("stat-value"), cmp.Text(itoa(stats.Completed))), g.Span(g.Class("stat-label"), cmp.Text("Selesai"))),
			g.Div(g.Class("stat"), g.Span(g.Class("stat-value"), cmp.Text(itoa(stats.InProgress))), g.Span(g.Class("stat-label"), cmp.Text("Berjalan"))),
		)
	}
	return g.Div(
		summary,
		card("Target Baru",
			g.Form(
				g.Method("post"), g.Action("/goals"),
				field("Judul", "title", "text", "", g.Required(), g.MaxLength("200")),
				selectField("Jenis", "type", domain.GoalWeight, goalTypes),
				field("Target", "target", "number", "", g.Required(), cmp.Attr("step", "any"), g.Min("0")),
				field("Satuan", "unit", "text", ""),
				field("Tenggat", "deadline", "date", ""),
				textArea("Deskripsi", "description", ""),
				submit("Tambah Target"),
			),
		),
		card("Target Saya",
			cmp.If(len(goals) == 0, empty("Belum ada target.")),
			g.Ul(g.Class("list"), g.ID("goals"), cmp.Map(goals, GoalRow)),
		),
	)
}

// GoalRow is one goal; its controls swap the row in place.
func GoalRow(gl domain.Goal) cmp.Node {
	id := uitoa(gl.ID)
	state := "open"
	if gl.IsCompleted {
		state = "done"
	}
	return g.Li(
		g.Class("goal goal-"+state),
		g.Div(
			g.Strong(cmp.Text(gl.Title)),
			g.Span(g.Class("badge"), cmp.Text(Title(gl.Type))),
			cmp.If(gl.Description != "", g.P(g.Class("muted"), cmp.Text(gl.Description))),
		),
		progressBar(gl.Progress),
		g.Small(cmp.Textf("%s / %s %s", Number(gl.Current), Number(gl.Target), gl.Unit)),
		cmp.If(gl.Deadline != "", g.Small(cmp.Textf(" · %d hari lagi", gl.DaysLeft))),
		g.Form(
			g.Class("inline"),
			hx.Put("/goals/"+id+"/progress"), hx.Target("closest li"), hx.Swap("outerHTML"),
			g.Input(g.Type("number"), g.Name("current"), g.Value(strconv.FormatFloat(gl.Current, 'f', -1, 64)), cmp.Attr("step", "any"), g.Min("0")),
			g.Button(g.Type("submit"), cmp.Text("Perbarui")),
		),
		g.Button(
			g.Type("button"),
			hx.Post("/goals/"+id+"/toggle"), hx.Target("closest li"), hx.Swap("outerHTML"),
			cmp.If(gl.IsCompleted, cmp.Text("Buka Lagi")),
			cmp.If(!gl.IsCompleted, cmp.Text("Selesai")),
		),
		g.Button(
			g.Type("button"),
			hx.Delete("/goals/"+id), hx.Confirm("Hapus target ini?"),
			hx.Target("closest li"), hx.Swap("outerHTML"),
			cmp.Text("Hapus"),
		),
	)
}
