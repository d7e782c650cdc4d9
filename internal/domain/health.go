package domain

import "time"

// Symptom types.
const (
	SymptomPhysical = "physical"
	SymptomMental   = "mental"
)

// Symptom is one logged symptom entry.
type Symptom struct {
	ID          uint      `json:"id,omitempty"`
	SymptomType string    `json:"symptom_type"`
	SymptomName string    `json:"symptom_name"`
	Severity    int       `json:"severity"`
	Notes       string    `json:"notes,omitempty"`
	LoggedAt    time.Time `json:"logged_at"`
}

// SymptomRequest is the body of POST /symptoms.
type SymptomRequest struct {
	SymptomType string `json:"symptom_type" form:"symptom_type" validate:"required,oneof=physical mental"`
	SymptomName string `json:"symptom_name" form:"symptom_name" validate:"required"`
	Severity    int    `json:"severity" form:"severity" validate:"required,min=1,max=10"`
	Notes       string `json:"notes,omitempty" form:"notes"`
}

// SymptomTemplate is an entry of the predefined symptom catalogue.
type SymptomTemplate struct {
	SymptomType string `json:"symptom_type"`
	SymptomName string `json:"symptom_name"`
	Description string `json:"description,omitempty"`
}

// SymptomCatalogue is the payload of GET /symptoms/list.
type SymptomCatalogue struct {
	Physical []SymptomTemplate `json:"physical"`
	Mental   []SymptomTemplate `json:"mental"`
}

// SymptomHistory is the payload of GET /symptoms/history.
type SymptomHistory struct {
	Symptoms []Symptom            `json:"symptoms"`
	Grouped  map[string][]Symptom `json:"grouped"`
}

// HealthRecord is one measurement of physical metrics.
type HealthRecord struct {
	ID             uint      `json:"id"`
	WeightKg       float64   `json:"weight_kg"`
	HeightCm       float64   `json:"height_cm"`
	BMI            float64   `json:"bmi"`
	ActivityLevel  string    `json:"activity_level"`
	EmotionalState string    `json:"emotional_state"`
	DailySchedule  string    `json:"daily_schedule,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	RecordDate     time.Time `json:"record_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// HealthRecordRequest is the body of POST /health.
type HealthRecordRequest struct {
	WeightKg       float64 `json:"weight_kg" form:"weight_kg" validate:"required,gt=0,lt=500"`
	HeightCm       float64 `json:"height_cm" form:"height_cm" validate:"required,gt=0,lt=300"`
	ActivityLevel  string  `json:"activity_level,omitempty" form:"activity_level"`
	EmotionalState string  `json:"emotional_state,omitempty" form:"emotional_state"`
	DailySchedule  string  `json:"daily_schedule,omitempty" form:"daily_schedule"`
	Notes          string  `json:"notes,omitempty" form:"notes"`
}

// RecommendationItem is a short advisory computed by the backend.
type RecommendationItem struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Dashboard is the payload of GET /health/dashboard. Missing collections are
// normalised to empty slices by the API client.
type Dashboard struct {
	HealthScore     int                  `json:"health_score"`
	LatestHealth    *HealthRecord        `json:"latest_health"`
	BMICategory     string               `json:"bmi_category"`
	TotalRecords    int64                `json:"total_records"`
	RecentSymptoms  []Symptom            `json:"recent_symptoms"`
	WeeklyProgress  []HealthRecord       `json:"weekly_progress"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

// Snapshot extracts the analyzer input from the dashboard payload.
func (d *Dashboard) Snapshot() HealthSnapshot {
	if d == nil {
		return HealthSnapshot{}
	}
	return HealthSnapshot{
		HealthScore:    d.HealthScore,
		RecentSymptoms: d.RecentSymptoms,
	}
}

// HealthSnapshot is the aggregate health data alerts are derived from.
type HealthSnapshot struct {
	HealthScore    int
	RecentSymptoms []Symptom
}

// Graph periods accepted by GET /health/graph/{period}.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// ValidPeriod reports whether p is a graph period the backend understands.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// GraphPoint is one point of the weight/BMI graph.
type GraphPoint struct {
	Date           string  `json:"date"`
	Weight         float64 `json:"weight"`
	BMI            float64 `json:"bmi"`
	EmotionalState string  `json:"emotional_state"`
}

// BMICategory classifies a BMI value the same way the backend does.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMI computes the body mass index; a non-positive height yields 0.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}
