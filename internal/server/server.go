package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/config"
	"github.com/nfrund/healthtrack/internal/handlers"
	"github.com/nfrund/healthtrack/internal/metrics"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/rendering"
)

// Dependencies are the services the server is built from.
type Dependencies struct {
	Config   config.Provider
	Accounts *account.Factory
	Metrics  *metrics.Collector
	// Bus carries session events to the audit subscriber. Optional.
	Bus pubsub.Subscriber
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	bus     pubsub.Subscriber
	metrics *metrics.Collector
}

// New creates a new Server instance with its middleware stack and routes.
func New(deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   middleware.AuthCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(skipInfra(middleware.Session(deps.Accounts)))

	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.New()
	setupErrorHandling(e)

	s := &Server{
		E:       e,
		Cfg:     deps.Config,
		bus:     deps.Bus,
		metrics: deps.Metrics,
	}
	s.RegisterRoutes()
	return s
}

// skipInfra bypasses mw for static assets and the probe endpoints, which
// never need the visitor's session.
func skipInfra(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			if strings.HasPrefix(p, staticPrefix+"/") || p == healthPath || p == metricsPath {
				return next(c)
			}
			return wrapped(c)
		}
	}
}
