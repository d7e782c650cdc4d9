package view

import (
	"strconv"

	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

var activityLevels = []option{
	{domain.ActivitySedentary, "Jarang bergerak"},
	{domain.ActivityLight, "Ringan"},
	{domain.ActivityModerate, "Sedang"},
	{domain.ActivityActive, "Aktif"},
}

var emotionalStates = []option{
	{"happy", "Senang"},
	{"neutral", "Biasa"},
	{"stressed", "Stres"},
	{"anxious", "Cemas"},
	{"sad", "Sedih"},
	{"tired", "Lelah"},
}

func floatValue(p *float64) string {
	if p == nil || *p == 0 {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// HealthAddPage records a new measurement. Values default to the profile's.
func HealthAddPage(user *domain.UserProfile) cmp.Node {
	return card("Catat Data Kesehatan",
		g.Form(
			g.Method("post"), g.Action("/health/add"),
			field("Berat Badan (kg)", "weight_kg", "number", floatValue(user.WeightKg), g.Required(), cmp.Attr("step", "0.1"), g.Min("1")),
			field("Tinggi Badan (cm)", "height_cm", "number", floatValue(user.HeightCm), g.Required(), cmp.Attr("step", "0.1"), g.Min("1")),
			selectField("Tingkat Aktivitas", "activity_level", user.ActivityLevel, activityLevels),
			selectField("Kondisi Emosional", "emotional_state", "neutral", emotionalStates),
			textArea("Jadwal Harian", "daily_schedule", ""),
			textArea("Catatan", "notes", ""),
			submit("Simpan"),
		),
	)
}

// OnboardingPage collects the physical metrics of a new account.
func OnboardingPage(user *domain.UserProfile) cmp.Node {
	birth := ""
	if user.BirthDate != nil {
		birth = user.BirthDate.Format("2006-01-02")
	}
	return card("Lengkapi Profil Anda",
		g.P(g.Class("muted"), cmp.Textf("Selamat datang, %s! Data ini dipakai untuk menghitung BMI dan rekomendasi.", user.Name)),
		g.Form(
			g.Method("post"), g.Action("/onboarding"),
			field("Tanggal Lahir", "birth_date", "date", birth),
			field("Tinggi Badan (cm)", "height_cm", "number", floatValue(user.HeightCm), g.Required(), cmp.Attr("step", "0.1")),
			field("Berat Badan (kg)", "weight_kg", "number", floatValue(user.WeightKg), g.Required(), cmp.Attr("step", "0.1")),
			selectField("Tingkat Aktivitas", "activity_level", user.ActivityLevel, activityLevels),
			submit("Mulai"),
		),
	)
}

// ProfilePage shows and edits the signed-in user's profile.
func ProfilePage(user *domain.UserProfile) cmp.Node {
	birth := ""
	if user.BirthDate != nil {
		birth = user.BirthDate.Format("2006-01-02")
	}
	var bmi cmp.Node
	if user.Onboarded() {
		v := domain.BMI(*user.WeightKg, *user.HeightCm)
		bmi = g.P(cmp.Textf("BMI: %s (%s)", Number(v), domain.BMICategory(v)))
	}
	return g.Div(
		card("Profil",
			g.P(g.Strong(cmp.Text(user.Name))),
			g.P(g.Class("muted"), cmp.Text(user.Email)),
			bmi,
		),
		card("Ubah Profil",
			g.Form(
				g.Method("post"), g.Action("/profile"),
				field("Nama", "name", "text", user.Name, g.Required()),
				field("Tanggal Lahir", "birth_date", "date", birth),
				field("Tinggi Badan (cm)", "height_cm", "number", floatValue(user.HeightCm), cmp.Attr("step", "0.1")),
				field("Berat Badan (kg)", "weight_kg", "number", floatValue(user.WeightKg), cmp.Attr("step", "0.1")),
				selectField("Tingkat Aktivitas", "activity_level", user.ActivityLevel, activityLevels),
				submit("Simpan Perubahan"),
			),
		),
	)
}

// SymptomsPage logs symptoms from the catalogue and shows the history.
func SymptomsPage(cat *domain.SymptomCatalogue, history []domain.Symptom) cmp.Node {
	var physical, mental []domain.SymptomTemplate
	if cat != nil {
		physical, mental = cat.Physical, cat.Mental
	}
	severity := make([]option, 0, 10)
	for i := 1; i <= 10; i++ {
		severity = append(severity, option{itoa(i), itoa(i)})
	}
	return g.Div(
		card("Catat Gejala",
			g.Form(
				g.Method("post"), g.Action("/symptoms"),
				g.FieldSet(
					g.Legend(cmp.Text("Fisik")),
					symptomChoices(physical),
				),
				g.FieldSet(
					g.Legend(cmp.Text("Mental")),
					symptomChoices(mental),
				),
				selectField("Tingkat Keparahan", "severity", "5", severity),
				textArea("Catatan", "notes", ""),
				submit("Simpan Gejala"),
			),
		),
		card("Riwayat Gejala",
			cmp.If(len(history) == 0, empty("Belum ada gejala tercatat.")),
			g.Ul(g.Class("list"), cmp.Map(history, symptomItem)),
		),
	)
}

func symptomChoices(ts []domain.SymptomTemplate) cmp.Node {
	if len(ts) == 0 {
		return empty("Daftar gejala tidak tersedia.")
	}
	return g.Div(
		g.Class("choices"),
		cmp.Map(ts, func(t domain.SymptomTemplate) cmp.Node {
			v := t.SymptomType + "|" + t.SymptomName
			return g.Label(
				g.Class("choice"),
				g.Input(g.Type("checkbox"), g.Name("symptom"), g.Value(v)),
				cmp.Text(t.SymptomName),
			)
		}),
	)
}
