// Package alerts derives dashboard advisories from recent symptom data.
//
// Analyze is a pure function: it performs no I/O and its output order is the
// rendering order. Matching is a case-insensitive substring test on the
// symptom name, so a name such as "Stresor" counts toward the stress rule.
package alerts

import (
	"strings"

	"github.com/nfrund/healthtrack/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy thresholds. They are fixed; changing them changes which users see
// which alerts.
const (
	StressThreshold   = 3
	SleepThreshold    = 2
	PhysicalThreshold = 4
	ScoreThreshold    = 60
)

var (
	stressTerms = []string{"stres", "cemas"}
	sleepTerms  = []string{"tidur", "insomnia"}
)

// Alerts emitted by the rules, in rule order.
var (
	StressAlert = domain.Alert{
		Type:     domain.AlertWarning,
		Title:    "Pola Stres Terdeteksi",
		Message:  "Anda mengalami stres berulang. Pertimbangkan konsultasi dengan psikolog.",
		Priority: domain.PriorityHigh,
	}
	SleepAlert = domain.Alert{
		Type:     domain.AlertWarning,
		Title:    "Gangguan Tidur Berkepanjangan",
		Message:  "Pola tidur Anda terganggu. Hindari kafein malam hari dan coba teknik relaksasi.",
		Priority: domain.PriorityHigh,
	}
	PhysicalAlert = domain.Alert{
		Type:     domain.AlertDanger,
		Title:    "Banyak Gejala Fisik",
		Message:  "Anda memiliki beberapa gejala fisik. Sangat disarankan untuk konsultasi ke dokter.",
		Priority: domain.PriorityCritical,
	}
	ScoreAlert = domain.Alert{
		Type:     domain.AlertInfo,
		Title:    "Skor Kesehatan Perlu Perhatian",
		Message:  "Skor kesehatan Anda di bawah optimal. Fokus pada pola makan, olahraga, dan istirahat.",
		Priority: domain.PriorityMedium,
	}
)

// Analyze evaluates every rule against the snapshot and returns the alerts of
// all rules that matched. The result is never nil.
func Analyze(s domain.HealthSnapshot) []domain.Alert {
	out := make([]domain.Alert, 0, 4)
	lower := cases.Lower(language.Und)

	var stress, sleep, physical int
	for _, sym := range s.RecentSymptoms {
		name := lower.String(sym.SymptomName)
		if containsAny(name, stressTerms) {
			stress++
		}
		if containsAny(name, sleepTerms) {
			sleep++
		}
		if sym.SymptomType == domain.SymptomPhysical {
			physical++
		}
	}

	if stress >= StressThreshold {
		out = append(out, StressAlert)
	}
	if sleep >= SleepThreshold {
		out = append(out, SleepAlert)
	}
	if physical >= PhysicalThreshold {
		out = append(out, PhysicalAlert)
	}
	if s.HealthScore < ScoreThreshold {
		out = append(out, ScoreAlert)
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
