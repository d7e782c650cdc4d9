package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/guard"
	"github.com/nfrund/healthtrack/internal/session"
	"github.com/nfrund/healthtrack/internal/view"
)

const accountContextKey = "account"

// Session opens the request's account over its auth cookie and resolves the
// stored token. It never rejects a request; Guard does that per route. A
// rejected token only clears the cookie: the user lands on the login page
// without a message.
func Session(f *account.Factory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			logger := FromContext(ctx)
			acc := f.Open(NewCookieStorage(c), logger)
			c.Set(accountContextKey, acc)

			if err := acc.Session.Resolve(ctx); err != nil && !errors.Is(err, domain.ErrSessionExpired) {
				logger.Info("Stored session not restored", "error", err)
			}
			return next(c)
		}
	}
}

// AccountFrom returns the account opened by Session.
func AccountFrom(c echo.Context) *account.Account {
	acc, _ := c.Get(accountContextKey).(*account.Account)
	return acc
}

// UserFrom returns the signed-in user, or nil.
func UserFrom(c echo.Context) *domain.UserProfile {
	acc := AccountFrom(c)
	if acc == nil {
		return nil
	}
	return acc.Session.State().User
}

// Guard applies r's gate before the handler runs.
func Guard(r guard.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var st session.State
			if acc := AccountFrom(c); acc != nil {
				st = acc.Session.State()
			}
			d := r.Decide(st.User, st.Loading)
			switch d.Outcome {
			case guard.Render:
				return next(c)
			case guard.Loading:
				return c.Render(http.StatusOK, "", view.Fragment(view.LoadingPage()))
			default:
				return Redirect(c, d.Target)
			}
		}
	}
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// Redirect navigates to target. htmx requests get an HX-Redirect header so
// the whole page changes instead of the swap target.
func Redirect(c echo.Context, target string) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
