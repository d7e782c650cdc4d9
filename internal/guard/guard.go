// Package guard decides whether a view may render given the session state.
//
// Decisions are declarative values; the routing layer interprets them. Nothing
// in this package redirects, renders or touches the session.
package guard

import "github.com/nfrund/healthtrack/internal/domain"

// Entry points used as redirect targets.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Outcome is what the routing layer should do with a request.
type Outcome int

const (
	// Render means the view's children may be rendered.
	Render Outcome = iota
	// Loading means the session is still resolving; show a placeholder.
	Loading
	// Redirect means navigate to Decision.Target instead of rendering.
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of gating one view.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Rendered reports whether the decision allows rendering the view.
func (d Decision) Rendered() bool {
	return d.Outcome == Render
}

// Protected gates a view that needs an authenticated user.
func Protected(user *domain.UserProfile, loading bool) Decision {
	switch {
	case loading:
		return Decision{Outcome: Loading}
	case user == nil:
		return Decision{Outcome: Redirect, Target: LoginPath}
	default:
		return Decision{Outcome: Render}
	}
}

// Public gates a view only anonymous visitors should see, such as the login form.
func Public(user *domain.UserProfile, loading bool) Decision {
	switch {
	case loading:
		return Decision{Outcome: Loading}
	case user != nil:
		return Decision{Outcome: Redirect, Target: DashboardPath}
	default:
		return Decision{Outcome: Render}
	}
}
