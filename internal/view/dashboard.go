package view

import (
	"fmt"

	"github.com/nfrund/healthtrack/internal/dashboard"
	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// DashboardPage renders the loaded dashboard.
func DashboardPage(user *domain.UserProfile, v *dashboard.View) cmp.Node {
	return g.Div(
		g.Class("dashboard"),
		g.Header(
			g.H1(cmp.Textf("Halo, %s", user.Name)),
			g.P(g.Class("muted"), cmp.Text("Ringkasan kesehatan Anda hari ini.")),
		),
		AlertsBanner(v.Alerts),
		summaryStats(v),
		g.Div(
			g.Class("grid"),
			card("Perkembangan", periodPicker(v.Period), GraphSection(v.Period, v.Graph, v.PartFailed(dashboard.PartGraph))),
			card("Air Minum", g.Div(
				g.ID("water-widget"),
				hx.Get("/water/widget"), hx.Trigger("load"), hx.Swap("innerHTML"),
				g.P(g.Class("muted"), cmp.Text("Memuat...")),
			)),
		),
		g.Div(
			g.Class("grid"),
			recentSymptoms(v),
			RemindersPanel(v.Reminders),
		),
		recommendationItems(v),
	)
}

// AlertsBanner lists the health alerts. Dismissing one only removes it from
// the page.
func AlertsBanner(alerts []domain.Alert) cmp.Node {
	if len(alerts) == 0 {
		return nil
	}
	return g.Div(
		g.Class("alerts"), g.ID("health-alerts"),
		cmp.Map(alerts, func(a domain.Alert) cmp.Node {
			return g.Div(
				g.Class("alert-item alert-"+a.Type),
				g.Data("priority", a.Priority),
				g.Div(
					g.Class("alert-content"),
					g.Strong(cmp.Text(a.Title)),
					g.P(cmp.Text(a.Message)),
				),
				g.Button(
					g.Type("button"), g.Class("alert-dismiss"), g.Aria("label", "Tutup"),
					hx.Post("/dashboard/alerts/dismiss"),
					hx.Target("closest .alert-item"),
					hx.Swap("outerHTML"),
					cmp.Text("×"),
				),
			)
		}),
	)
}

func summaryStats(v *dashboard.View) cmp.Node {
	if v.Summary == nil {
		return card("", empty("Data kesehatan belum dapat dimuat."))
	}
	s := v.Summary
	bmi := "-"
	if s.LatestHealth != nil && s.LatestHealth.BMI > 0 {
		bmi = Number(s.LatestHealth.BMI)
	}
	stat := func(label, value string) cmp.Node {
		return g.Div(g.Class("stat"),
			g.Span(g.Class("stat-value"), cmp.Text(value)),
			g.Span(g.Class("stat-label"), cmp.Text(label)),
		)
	}
	return g.Div(
		g.Class("stats"),
		stat("Skor Kesehatan", itoa(s.HealthScore)),
		stat("BMI", bmi),
		stat("Kategori BMI", orDash(s.BMICategory)),
		stat("Total Catatan", Number(float64(s.TotalRecords))),
		stat("Gejala Terbaru", itoa(len(s.RecentSymptoms))),
	)
}

var periods = []option{
	{domain.PeriodWeek, "Minggu"},
	{domain.PeriodMonth, "Bulan"},
	{domain.PeriodYear, "Tahun"},
}

func periodPicker(active string) cmp.Node {
	return g.Div(
		g.Class("tabs"),
		cmp.Map(periods, func(p option) cmp.Node {
			return g.A(
				g.Href("/dashboard?period="+p.value),
				hx.Get("/dashboard/graph?period="+p.value),
				hx.Target("#graph"), hx.Swap("outerHTML"),
				cmp.If(p.value == active, g.Class("active")),
				cmp.Text(p.label),
			)
		}),
	)
}

// GraphSection renders weight and BMI over the period as a table with bars
// relative to the heaviest entry.
func GraphSection(period string, points []domain.GraphPoint, failed bool) cmp.Node {
	var body cmp.Node
	switch {
	case failed:
		body = empty("Grafik gagal dimuat.")
	case len(points) == 0:
		body = empty("Belum ada data untuk periode ini.")
	default:
		var heaviest float64
		for _, p := range points {
			if p.Weight > heaviest {
				heaviest = p.Weight
			}
		}
		body = g.Table(
			g.THead(g.Tr(g.Th(cmp.Text("Tanggal")), g.Th(cmp.Text("Berat (kg)")), g.Th(cmp.Text("BMI")), g.Th())),
			g.TBody(cmp.Map(points, func(p domain.GraphPoint) cmp.Node {
				pct := 0.0
				if heaviest > 0 {
					pct = p.Weight / heaviest * 100
				}
				return g.Tr(
					g.Td(cmp.Text(p.Date)),
					g.Td(cmp.Text(Number(p.Weight))),
					g.Td(cmp.Text(Number(p.BMI))),
					g.Td(progressBar(pct)),
				)
			})),
		)
	}
	return g.Div(g.ID("graph"), g.Data("period", period), body)
}

func recentSymptoms(v *dashboard.View) cmp.Node {
	var recent []domain.Symptom
	if v.Summary != nil {
		recent = v.Summary.RecentSymptoms
	}
	return card("Gejala Terbaru",
		cmp.If(len(recent) == 0, empty("Tidak ada gejala tercatat minggu ini.")),
		g.Ul(g.Class("list"), cmp.Map(recent, symptomItem)),
		g.P(g.Class("muted"), cmp.Textf("Riwayat: %d gejala", len(v.History))),
		g.A(g.Href("/symptoms"), g.Class("btn"), cmp.Text("Catat Gejala")),
	)
}

func symptomItem(s domain.Symptom) cmp.Node {
	return g.Li(
		g.Class("symptom symptom-"+s.SymptomType),
		g.Strong(cmp.Text(s.SymptomName)),
		g.Span(g.Class("badge"), cmp.Textf("%d/10", s.Severity)),
		g.Small(cmp.Text(Date(s.LoggedAt))),
	)
}

// RemindersPanel lists the reminders with their toggles.
func RemindersPanel(reminders []domain.Reminder) cmp.Node {
	return card("Pengingat",
		g.Ul(g.Class("list"), g.ID("reminders"), cmp.Map(reminders, ReminderRow)),
		g.Form(
			g.Class("inline"), g.Method("post"), g.Action("/reminders"),
			selectField("Jenis", "type", domain.ReminderWater, reminderTypes),
			field("Label", "label", "text", "", g.Required()),
			field("Waktu", "time", "time", "08:00", g.Required()),
			submit("Tambah"),
		),
	)
}

var reminderTypes = []option{
	{domain.ReminderWater, "Minum Air"},
	{domain.ReminderMeal, "Makan"},
	{domain.ReminderExercise, "Olahraga"},
	{domain.ReminderMeditation, "Meditasi"},
	{domain.ReminderRest, "Istirahat"},
	{domain.ReminderCustom, "Lainnya"},
}

// ReminderRow is one reminder; the toggle swaps the row in place.
func ReminderRow(r domain.Reminder) cmp.Node {
	state, label := "paused", "Aktifkan"
	if r.IsActive {
		state, label = "active", "Jeda"
	}
	vals := fmt.Sprintf(`{"active": %t}`, r.IsActive)
	return g.Li(
		g.Class("reminder reminder-"+state),
		g.Span(g.Class("reminder-time"), cmp.Text(r.Time)),
		g.Span(cmp.Text(r.Label)),
		g.Button(
			g.Type("button"),
			hx.Post("/reminders/"+r.ID+"/toggle"),
			cmp.Attr("hx-vals", vals),
			hx.Target("closest li"), hx.Swap("outerHTML"),
			cmp.Text(label),
		),
		cmp.If(!r.Template(), g.Button(
			g.Type("button"),
			hx.Delete("/reminders/"+r.ID),
			hx.Confirm("Hapus pengingat ini?"),
			hx.Target("closest li"), hx.Swap("outerHTML"),
			cmp.Text("Hapus"),
		)),
	)
}

func recommendationItems(v *dashboard.View) cmp.Node {
	if v.Summary == nil || len(v.Summary.Recommendations) == 0 {
		return nil
	}
	return card("Saran Untuk Anda",
		g.Ul(g.Class("list"), cmp.Map(v.Summary.Recommendations, func(r domain.RecommendationItem) cmp.Node {
			return g.Li(
				g.Class("recommendation priority-"+r.Priority),
				g.Strong(cmp.Text(r.Title)),
				g.P(cmp.Text(r.Description)),
			)
		})),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
