package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/guard"
	"github.com/nfrund/healthtrack/internal/handlers"
	"github.com/nfrund/healthtrack/internal/middleware"
	"github.com/nfrund/healthtrack/web"
)

const (
	staticPrefix = "/static"
	healthPath   = "/healthz"
	metricsPath  = "/metrics"
)

// authenticated gates the htmx and form actions, which have no entry in the
// page route table.
var authenticated = middleware.Guard(guard.Route{Access: guard.Authenticated})

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	// Create instances of all application handlers.
	authHandler := handlers.NewAuthHandler()
	var alerts handlers.AlertRecorder
	if s.metrics != nil {
		alerts = s.metrics
	}
	dashboardHandler := handlers.NewDashboardHandler(alerts)
	healthHandler := handlers.NewHealthHandler()
	trackingHandler := handlers.NewTrackingHandler()
	familyHandler := handlers.NewFamilyHandler()
	contentHandler := handlers.NewContentHandler()
	rateLimiter := middleware.RateLimiter(middleware.DefaultAuthRate)

	// Pages, one per entry of the client route table.
	pages := map[string]echo.HandlerFunc{
		"/login":                 authHandler.LoginGet,
		"/register":              authHandler.RegisterGet,
		"/forgot-password":       authHandler.ForgotPasswordGet,
		"/onboarding":            healthHandler.OnboardingGet,
		"/dashboard":             dashboardHandler.DashboardGet,
		"/health/add":            healthHandler.AddGet,
		"/symptoms":              healthHandler.SymptomsGet,
		"/recommendations/:type": handlers.RecommendationsGet,
		"/family":                familyHandler.FamilyGet,
		"/family/:id/health":     familyHandler.MemberHealth,
		"/profile":               healthHandler.ProfileGet,
		"/goals":                 trackingHandler.GoalsGet,
		"/water":                 trackingHandler.WaterGet,
		"/articles":              contentHandler.ArticlesGet,
		"/articles/:id":          contentHandler.ArticleGet,
		"/forum":                 contentHandler.ForumGet,
		"/forum/:id":             contentHandler.ThreadGet,
	}
	for _, r := range guard.Routes {
		h, ok := pages[r.Pattern]
		if !ok {
			panic(fmt.Sprintf("server: no handler for route %s", r.Pattern))
		}
		s.E.GET(r.Pattern, h, middleware.Guard(r))
	}

	// Form posts of the public pages.
	public := func(path string) echo.MiddlewareFunc {
		r, _ := guard.Lookup(path)
		return middleware.Guard(r)
	}
	s.E.POST("/login", authHandler.LoginPost, rateLimiter, public("/login"))
	s.E.POST("/register", authHandler.RegisterPost, rateLimiter, public("/register"))
	s.E.POST("/forgot-password", authHandler.ForgotPasswordPost, rateLimiter, public("/forgot-password"))
	s.E.POST("/logout", authHandler.Logout)

	// Dashboard fragments and reminders.
	s.E.GET("/dashboard/graph", dashboardHandler.GraphGet, authenticated)
	s.E.POST("/dashboard/alerts/dismiss", dashboardHandler.DismissAlert, authenticated)
	s.E.POST("/reminders", dashboardHandler.CreateReminder, authenticated)
	s.E.POST("/reminders/:id/toggle", dashboardHandler.ToggleReminder, authenticated)
	s.E.DELETE("/reminders/:id", dashboardHandler.DeleteReminder, authenticated)

	// Health records and profile.
	s.E.POST("/onboarding", healthHandler.OnboardingPost, authenticated)
	s.E.POST("/health/add", healthHandler.AddPost, authenticated)
	s.E.POST("/profile", healthHandler.ProfilePost, authenticated)
	s.E.POST("/symptoms", healthHandler.SymptomsPost, authenticated)

	// Water and goals.
	s.E.GET("/water/widget", trackingHandler.WaterWidget, authenticated)
	s.E.POST("/water/add", trackingHandler.AddGlass, authenticated)
	s.E.POST("/water/remove", trackingHandler.RemoveGlass, authenticated)
	s.E.POST("/water/goal", trackingHandler.SetGoal, authenticated)
	s.E.POST("/goals", trackingHandler.CreateGoal, authenticated)
	s.E.PUT("/goals/:id/progress", trackingHandler.UpdateProgress, authenticated)
	s.E.POST("/goals/:id/toggle", trackingHandler.ToggleGoal, authenticated)
	s.E.DELETE("/goals/:id", trackingHandler.DeleteGoal, authenticated)

	// Family.
	s.E.POST("/family/invite", familyHandler.Invite, authenticated)
	s.E.POST("/family/requests/:id/approve", familyHandler.Approve, authenticated)
	s.E.POST("/family/requests/:id/reject", familyHandler.Reject, authenticated)
	s.E.DELETE("/family/:id", familyHandler.Remove, authenticated)

	// Forum.
	s.E.POST("/forum", contentHandler.CreatePost, authenticated)
	s.E.POST("/forum/:id/comments", contentHandler.AddComment, authenticated)
	s.E.POST("/forum/:id/like", contentHandler.ToggleLike, authenticated)
	s.E.DELETE("/forum/:id", contentHandler.DeletePost, authenticated)

	// Unknown paths, including "/", go to the login page.
	s.E.GET("/", handlers.Root)
	s.E.RouteNotFound("/*", handlers.Root)

	s.E.StaticFS(staticPrefix, web.Static())
	s.E.GET(healthPath, func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	if s.metrics != nil {
		s.E.GET(metricsPath, echo.WrapHandler(s.metrics.Handler()))
	}
}
