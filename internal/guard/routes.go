package guard

import (
	"strings"

	"github.com/nfrund/healthtrack/internal/domain"
)

// Access is the gate a route sits behind.
type Access int

const (
	// PublicOnly routes redirect authenticated users to the dashboard.
	PublicOnly Access = iota
	// Authenticated routes redirect anonymous visitors to the login page.
	Authenticated
)

// Route is one entry of the client route table.
type Route struct {
	Pattern string
	Access  Access
}

// Decide applies the route's gate to the session state.
func (r Route) Decide(user *domain.UserProfile, loading bool) Decision {
	if r.Access == Authenticated {
		return Protected(user, loading)
	}
	return Public(user, loading)
}

// Routes is the client route table. Patterns use ":name" for parameters.
var Routes = []Route{
	{Pattern: "/login", Access: PublicOnly},
	{Pattern: "/register", Access: PublicOnly},
	{Pattern: "/forgot-password", Access: PublicOnly},

	{Pattern: "/onboarding", Access: Authenticated},
	{Pattern: "/dashboard", Access: Authenticated},
	{Pattern: "/health/add", Access: Authenticated},
	{Pattern: "/symptoms", Access: Authenticated},
	{Pattern: "/recommendations/:type", Access: Authenticated},
	{Pattern: "/family", Access: Authenticated},
	{Pattern: "/family/:id/health", Access: Authenticated},
	{Pattern: "/profile", Access: Authenticated},
	{Pattern: "/goals", Access: Authenticated},
	{Pattern: "/water", Access: Authenticated},
	{Pattern: "/articles", Access: Authenticated},
	{Pattern: "/articles/:id", Access: Authenticated},
	{Pattern: "/forum", Access: Authenticated},
	{Pattern: "/forum/:id", Access: Authenticated},
}

// Lookup finds the route matching path. Unknown paths, including "/", are not
// found; callers redirect them to LoginPath.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if Match(r.Pattern, path) {
			return r, true
		}
	}
	return Route{}, false
}

// Match reports whether path fits pattern segment by segment. A trailing
// slash on path is ignored.
func Match(pattern, path string) bool {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if seg != xs[i] {
			return false
		}
	}
	return true
}
