package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/groundops/crew-portal/internal/api/http/handlers"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/rbac"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Navigation     *handlers.NavigationHandler
	Assignments    *handlers.AssignmentHandler
	Notifications  *handlers.NotificationHandler
	Dashboard      *handlers.DashboardHandler
	Shifts         *handlers.ShiftHandler
	Stream         *handlers.StreamHandler
	AuthMiddleware *identity.AuthMiddleware
	Registry       *prometheus.Registry
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// The stream authenticates itself from the token, so it sits outside the
	// middleware chain (EventSource cannot set headers).
	app.Get("/realtime/stream", cfg.Stream.Stream)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Profile.Me)
	protected.Get("/navegacion", cfg.Navigation.Menu)

	withProfile := protected.Group("", identity.RequireProfile())
	withProfile.Put("/me/perfil", cfg.Profile.UpdateProfile)
	withProfile.Patch("/me/estado", cfg.Profile.SetTurnState)
	withProfile.Get("/asignaciones", cfg.Assignments.List)
	withProfile.Post("/asignaciones", cfg.Assignments.Create)
	withProfile.Get("/notificaciones", cfg.Notifications.ListUnread)
	withProfile.Post("/notificaciones/:id/leida", cfg.Notifications.MarkRead)
	withProfile.Post("/notificaciones/leidas", cfg.Notifications.MarkAllRead)
	withProfile.Get("/dashboard/resumen", cfg.Dashboard.Summary)
	withProfile.Get("/turnos", cfg.Shifts.List)

	admin := withProfile.Group("/admin", identity.RequireModule(rbac.ModuleAdmin))
	admin.Get("/agentes", cfg.Profile.ListAgents)
}
