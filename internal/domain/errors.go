package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the client. These provide consistent, checkable errors
// for the failure modes every view has to tell apart.
var (
	// ErrSessionExpired is returned by any authenticated call the backend
	// rejected with 401. The session has already been reset when it is seen.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated is returned when an operation needs a session but
	// none is held.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when the backend reports a missing resource.
	ErrNotFound = errors.New("requested resource not found")
)

// Default messages surfaced when the backend gives no reason.
const (
	DefaultLoginMessage    = "Login failed"
	DefaultRegisterMessage = "Registration failed"
	DefaultResetMessage    = "Password reset failed"
)

// AuthError is a login, registration or password reset rejected by the
// backend. Message is safe to show to the user.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("auth rejected (%d): %s", e.Status, e.Message)
	}
	return "auth rejected: " + e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError is any other failed backend call: a non-2xx status or a
// transport failure. Views log it and keep their default state.
type FetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AuthMessage returns the user-facing message of an AuthError in err's chain,
// or fallback when err carries none.
func AuthMessage(err error, fallback string) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	return fallback
}

// IsSessionExpired reports whether err means the session was reset by a 401.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
