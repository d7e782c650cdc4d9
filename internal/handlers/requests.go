package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// fieldMessages are the user-facing names of validated form fields.
var fieldMessages = map[string]string{
	"Email":        "Email",
	"Password":     "Password",
	"NewPassword":  "Password baru",
	"Name":         "Nama",
	"WeightKg":     "Berat badan",
	"HeightCm":     "Tinggi badan",
	"MemberEmail":  "Email anggota",
	"Relationship": "Hubungan",
	"SymptomName":  "Gejala",
	"Severity":     "Tingkat keparahan",
	"Title":        "Judul",
	"Content":      "Isi",
	"Target":       "Target",
	"Type":         "Jenis",
}

// validationMessage turns the first validation failure into a sentence
// suitable for a flash message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Data yang dikirim tidak valid."
	}
	fe := verrs[0]
	name, ok := fieldMessages[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return name + " wajib diisi."
	case "email":
		return name + " tidak valid."
	case "min":
		return fmt.Sprintf("%s minimal %s karakter.", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s.", name, fe.Param())
	case "gt", "lt":
		return name + " di luar rentang yang diizinkan."
	default:
		return name + " tidak valid."
	}
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return uint(n), nil
}

func formFloat(c echo.Context, name string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(c.FormValue(name)), ",", "."), 64)
	return f
}

func formInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(c.FormValue(name)))
	return n
}

func formDate(c echo.Context, name string) *time.Time {
	t, err := time.Parse("2006-01-02", c.FormValue(name))
	if err != nil {
		return nil
	}
	return &t
}
