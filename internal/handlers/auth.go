package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/guard"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/view"
)

// AuthHandler handles sign-in, registration, password reset and logout.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	return page(c, "Masuk", "", view.LoginPage(view.LoginData{Email: view.FormEmail(c)}))
}

// LoginPost signs in with the submitted credentials (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	acc := middleware.AccountFrom(c)
	if _, err := acc.Session.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Failed login attempt", "email", req.Email, "error", err)
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, domain.AuthMessage(err, domain.DefaultLoginMessage))
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, guard.DashboardPath)
}

// RegisterGet renders the registration page (GET /register).
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	return page(c, "Daftar", "", view.RegisterPage(view.RegisterData{Email: view.FormEmail(c)}))
}

// RegisterPost creates an account and signs in with it (POST /register). New
// accounts continue to onboarding.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var req domain.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	fail := func(msg string) error {
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, msg)
		return c.Redirect(http.StatusSeeOther, "/register")
	}
	if req.Password != c.FormValue("password_confirm") {
		return fail("Konfirmasi password tidak cocok.")
	}
	if err := c.Validate(&req); err != nil {
		return fail(validationMessage(err))
	}

	acc := middleware.AccountFrom(c)
	if _, err := acc.Session.Register(c.Request().Context(), req.Email, req.Password, req.Name); err != nil {
		return fail(domain.AuthMessage(err, domain.DefaultRegisterMessage))
	}
	view.SetFlashSuccess(c, "Akun berhasil dibuat!")
	return c.Redirect(http.StatusSeeOther, "/onboarding")
}

// ForgotPasswordGet renders the password reset page (GET /forgot-password).
func (h *AuthHandler) ForgotPasswordGet(c echo.Context) error {
	return page(c, "Reset Password", "", view.ForgotPasswordPage(view.ForgotPasswordData{Email: view.FormEmail(c)}))
}

// ForgotPasswordPost sets a new password for an email (POST /forgot-password).
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	var req domain.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	fail := func(msg string) error {
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, msg)
		return c.Redirect(http.StatusSeeOther, "/forgot-password")
	}
	if req.NewPassword != c.FormValue("password_confirm") {
		return fail("Konfirmasi password tidak cocok.")
	}
	if err := c.Validate(&req); err != nil {
		return fail(validationMessage(err))
	}
	if err := api(c).ResetPassword(c.Request().Context(), req); err != nil {
		return fail(domain.AuthMessage(err, domain.DefaultResetMessage))
	}
	view.SetFormEmail(c, req.Email)
	view.SetFlashSuccess(c, "Password berhasil diubah. Silakan masuk.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout forgets the session (POST /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := middleware.AccountFrom(c).Session.Logout(c.Request().Context()); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to clear session", "error", err)
	}
	view.SetFlashSuccess(c, "Anda telah keluar.")
	return middleware.Redirect(c, guard.LoginPath)
}
