package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/view"
)

// HealthHandler covers health records, symptoms and the user's profile.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// AddGet renders the measurement form (GET /health/add).
func (h *HealthHandler) AddGet(c echo.Context) error {
	return page(c, "Catat Kesehatan", "/health/add", view.HealthAddPage(middleware.UserFrom(c)))
}

// AddPost records a measurement (POST /health/add).
func (h *HealthHandler) AddPost(c echo.Context) error {
	req := domain.HealthRecordRequest{
		WeightKg:       formFloat(c, "weight_kg"),
		HeightCm:       formFloat(c, "height_cm"),
		ActivityLevel:  c.FormValue("activity_level"),
		EmotionalState: c.FormValue("emotional_state"),
		DailySchedule:  c.FormValue("daily_schedule"),
		Notes:          c.FormValue("notes"),
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/health/add")
	}
	if _, err := api(c).CreateHealthRecord(c.Request().Context(), req); err != nil {
		return actionFailed(c, err, "Gagal menyimpan data kesehatan.", "/health/add")
	}
	return done(c, "Data kesehatan tersimpan.", "/dashboard")
}

// OnboardingGet renders the first-run profile form (GET /onboarding).
func (h *HealthHandler) OnboardingGet(c echo.Context) error {
	return page(c, "Lengkapi Profil", "", view.OnboardingPage(middleware.UserFrom(c)))
}

// OnboardingPost saves the physical metrics and records the first
// measurement (POST /onboarding).
func (h *HealthHandler) OnboardingPost(c echo.Context) error {
	req := profileRequest(c)
	if req.HeightCm <= 0 || req.WeightKg <= 0 {
		view.SetFlashError(c, "Tinggi dan berat badan wajib diisi.")
		return c.Redirect(http.StatusSeeOther, "/onboarding")
	}
	if err := h.saveProfile(c, req); err != nil {
		return actionFailed(c, err, "Gagal menyimpan profil.", "/onboarding")
	}
	record := domain.HealthRecordRequest{WeightKg: req.WeightKg, HeightCm: req.HeightCm, ActivityLevel: req.ActivityLevel}
	if _, err := api(c).CreateHealthRecord(c.Request().Context(), record); err != nil {
		if domain.IsSessionExpired(err) {
			return err
		}
		middleware.FromContext(c.Request().Context()).Warn("First health record not saved", "error", err)
	}
	return done(c, "Profil tersimpan. Selamat datang!", "/dashboard")
}

// ProfileGet renders the profile page (GET /profile).
func (h *HealthHandler) ProfileGet(c echo.Context) error {
	return page(c, "Profil", "/profile", view.ProfilePage(middleware.UserFrom(c)))
}

// ProfilePost updates the profile (POST /profile).
func (h *HealthHandler) ProfilePost(c echo.Context) error {
	if err := h.saveProfile(c, profileRequest(c)); err != nil {
		return actionFailed(c, err, "Gagal memperbarui profil.", "/profile")
	}
	return done(c, "Profil diperbarui.", "/profile")
}

func profileRequest(c echo.Context) domain.UpdateProfileRequest {
	return domain.UpdateProfileRequest{
		Name:          strings.TrimSpace(c.FormValue("name")),
		BirthDate:     formDate(c, "birth_date"),
		HeightCm:      formFloat(c, "height_cm"),
		WeightKg:      formFloat(c, "weight_kg"),
		ActivityLevel: c.FormValue("activity_level"),
	}
}

// saveProfile sends req and refreshes the cached user.
func (h *HealthHandler) saveProfile(c echo.Context, req domain.UpdateProfileRequest) error {
	if err := c.Validate(&req); err != nil {
		return &domain.FetchError{Op: "auth.profile", Status: http.StatusBadRequest, Message: validationMessage(err)}
	}
	acc := middleware.AccountFrom(c)
	user, err := acc.API.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return acc.Session.UpdateUser(*user)
}

// SymptomsGet renders the symptom log (GET /symptoms).
func (h *HealthHandler) SymptomsGet(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	cat, err := api(c).SymptomCatalogue(ctx)
	if err != nil {
		if domain.IsSessionExpired(err) {
			return err
		}
		logger.Warn("Symptom catalogue unavailable", "error", err)
	}
	var history []domain.Symptom
	if hist, err := api(c).SymptomHistory(ctx); err != nil {
		if domain.IsSessionExpired(err) {
			return err
		}
		logger.Warn("Symptom history unavailable", "error", err)
	} else {
		history = hist.Symptoms
	}
	return page(c, "Gejala", "/symptoms", view.SymptomsPage(cat, history))
}

// SymptomsPost logs the checked symptoms in one batch (POST /symptoms).
func (h *HealthHandler) SymptomsPost(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	severity := formInt(c, "severity")
	notes := c.FormValue("notes")

	var reqs []domain.SymptomRequest
	for _, v := range form["symptom"] {
		kind, name, ok := strings.Cut(v, "|")
		if !ok {
			continue
		}
		req := domain.SymptomRequest{SymptomType: kind, SymptomName: name, Severity: severity, Notes: notes}
		if err := c.Validate(&req); err != nil {
			view.SetFlashError(c, validationMessage(err))
			return c.Redirect(http.StatusSeeOther, "/symptoms")
		}
		reqs = append(reqs, req)
	}
	if len(reqs) == 0 {
		view.SetFlashError(c, "Pilih minimal satu gejala.")
		return c.Redirect(http.StatusSeeOther, "/symptoms")
	}

	if len(reqs) == 1 {
		_, err = api(c).LogSymptom(c.Request().Context(), reqs[0])
	} else {
		err = api(c).LogSymptoms(c.Request().Context(), reqs)
	}
	if err != nil {
		return actionFailed(c, err, "Gagal menyimpan gejala.", "/symptoms")
	}
	return done(c, "Gejala tercatat.", "/symptoms")
}
