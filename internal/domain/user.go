package domain

import "time"

// Activity levels accepted by the profile endpoint.
const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
)

// UserProfile is the authenticated user's record as returned by the backend.
// Optional fields are pointers so an absent value is distinguishable from zero.
type UserProfile struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	HeightCm      *float64   `json:"height_cm,omitempty"`
	WeightKg      *float64   `json:"weight_kg,omitempty"`
	ActivityLevel string     `json:"activity_level"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Onboarded reports whether the physical metrics needed by the dashboard are set.
func (u *UserProfile) Onboarded() bool {
	return u != nil && u.HeightCm != nil && *u.HeightCm > 0 && u.WeightKg != nil && *u.WeightKg > 0
}

// Clone returns a deep copy so callers never share the session's record.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	if u.BirthDate != nil {
		t := *u.BirthDate
		c.BirthDate = &t
	}
	if u.HeightCm != nil {
		h := *u.HeightCm
		c.HeightCm = &h
	}
	if u.WeightKg != nil {
		w := *u.WeightKg
		c.WeightKg = &w
	}
	if u.CreatedAt != nil {
		t := *u.CreatedAt
		c.CreatedAt = &t
	}
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Name     string `json:"name" form:"name" validate:"required"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" form:"email" validate:"required,email"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=6"`
}

// UpdateProfileRequest is the body of PUT /auth/profile. Zero values are
// ignored by the backend, so every field is optional.
type UpdateProfileRequest struct {
	Name          string     `json:"name,omitempty" form:"name"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	HeightCm      float64    `json:"height_cm,omitempty" form:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKg      float64    `json:"weight_kg,omitempty" form:"weight_kg" validate:"omitempty,gt=0,lt=500"`
	ActivityLevel string     `json:"activity_level,omitempty" form:"activity_level" validate:"omitempty,oneof=sedentary light moderate active"`
}

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
