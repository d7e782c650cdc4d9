package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/session"
)

// AuthSessionName is the cookie holding the bearer token and cached profile.
const AuthSessionName = "healthtrack-auth"

// AuthCookieMaxAge is how long a signed-in browser stays signed in, in seconds.
const AuthCookieMaxAge = 7 * 24 * 60 * 60

const (
	cookieKeyToken = "token"
	cookieKeyUser  = "user"
)

// CookieStorage keeps a browser's session record in a signed cookie. It must
// be used while the response can still take headers.
type CookieStorage struct {
	c echo.Context
}

// NewCookieStorage returns the storage of the request behind c.
func NewCookieStorage(c echo.Context) *CookieStorage {
	return &CookieStorage{c: c}
}

func (s *CookieStorage) get() (*sessions.Session, error) {
	return echosession.Get(AuthSessionName, s.c)
}

// Load implements session.Storage. A cookie that fails verification reads as
// an error so the manager discards it.
func (s *CookieStorage) Load() (session.Record, error) {
	sess, err := s.get()
	if err != nil {
		return session.Record{}, fmt.Errorf("read auth cookie: %w", err)
	}
	token, _ := sess.Values[cookieKeyToken].(string)
	if token == "" {
		return session.Record{}, nil
	}
	rec := session.Record{Token: token}
	if raw, ok := sess.Values[cookieKeyUser].(string); ok && raw != "" {
		var u domain.UserProfile
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return session.Record{}, fmt.Errorf("decode cached user: %w", err)
		}
		rec.User = &u
	}
	return rec, nil
}

// Save implements session.Storage.
func (s *CookieStorage) Save(rec session.Record) error {
	sess, err := s.get()
	if sess == nil {
		return fmt.Errorf("read auth cookie: %w", err)
	}
	if sess.Options.MaxAge < 0 {
		// Cleared earlier in this request.
		sess.Options.MaxAge = AuthCookieMaxAge
	}
	sess.Values[cookieKeyToken] = rec.Token
	if rec.User != nil {
		b, err := json.Marshal(rec.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		sess.Values[cookieKeyUser] = string(b)
	} else {
		delete(sess.Values, cookieKeyUser)
	}
	return sess.Save(s.c.Request(), s.c.Response())
}

// Clear implements session.Storage by expiring the cookie.
func (s *CookieStorage) Clear() error {
	sess, err := s.get()
	if sess == nil {
		return fmt.Errorf("read auth cookie: %w", err)
	}
	// A cookie that failed verification still yields a fresh session to
	// overwrite it with.
	delete(sess.Values, cookieKeyToken)
	delete(sess.Values, cookieKeyUser)
	sess.Options.MaxAge = -1
	return sess.Save(s.c.Request(), s.c.Response())
}
